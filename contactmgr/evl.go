package contactmgr

import (
	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/contact"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// EVL is the Effective Volume Limit contact manager: residual volume is
// V = (end-start)*rate, charged flat regardless of bundle priority, with
// no added queueing delay.
type EVL struct {
	Rate  sabrtypes.Rate
	Delay sabrtypes.Duration

	booked         sabrtypes.Volume
	originalVolume sabrtypes.Volume
}

// NewEVL constructs an EVL manager with the given rate and one-way delay.
func NewEVL(rate sabrtypes.Rate, delay sabrtypes.Duration) *EVL {
	return &EVL{Rate: rate, Delay: delay}
}

// TryInit validates rate/delay and computes the contact's original
// volume.
func (m *EVL) TryInit(info contact.Info) bool {
	if m.Rate <= 0 || m.Delay < 0 {
		return false
	}
	m.originalVolume = sabrtypes.Volume(float64(info.End-info.Start) * float64(m.Rate))

	return true
}

// OriginalVolume reports the contact's pre-allocated capacity.
func (m *EVL) OriginalVolume() sabrtypes.Volume { return m.originalVolume }

func (m *EVL) admit(info contact.Info, at sabrtypes.Date, size sabrtypes.Volume) (contact.TxHop, bool) {
	if m.booked+size > m.originalVolume {
		return contact.TxHop{}, false
	}
	txStart := maxDate(at, info.Start)
	txEnd := txStart + sabrtypes.Date(float64(size)/float64(m.Rate))
	if txEnd > info.End {
		return contact.TxHop{}, false
	}

	return contact.TxHop{
		TxStart:    txStart,
		TxEnd:      txEnd,
		Delay:      m.Delay,
		Expiration: info.End,
		Arrival:    txEnd + sabrtypes.Date(m.Delay),
	}, true
}

// DryRunTx is a pure admission test; it never mutates m.
func (m *EVL) DryRunTx(info contact.Info, at sabrtypes.Date, b *bundle.Bundle) (contact.TxHop, bool) {
	return m.admit(info, at, b.Size)
}

// ScheduleTx repeats the DryRunTx predicate and, on success, commits the
// booking.
func (m *EVL) ScheduleTx(info contact.Info, at sabrtypes.Date, b *bundle.Bundle) (contact.TxHop, bool) {
	hop, ok := m.admit(info, at, b.Size)
	if ok {
		m.booked += b.Size
	}

	return hop, ok
}

func maxDate(a, b sabrtypes.Date) sabrtypes.Date {
	if a > b {
		return a
	}

	return b
}
