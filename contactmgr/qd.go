package contactmgr

import (
	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/contact"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// QD is the Queue Delay contact manager: the same flat residual-volume
// ledger as EVL, but the earliest usable contact time is pushed forward
// by the drain time of whatever is already booked, modeling an
// auto-updated transmission queue.
type QD struct {
	Rate  sabrtypes.Rate
	Delay sabrtypes.Duration

	booked         sabrtypes.Volume
	originalVolume sabrtypes.Volume
}

// NewQD constructs a QD manager with the given rate and one-way delay.
func NewQD(rate sabrtypes.Rate, delay sabrtypes.Duration) *QD {
	return &QD{Rate: rate, Delay: delay}
}

// TryInit validates rate/delay and computes the contact's original
// volume.
func (m *QD) TryInit(info contact.Info) bool {
	if m.Rate <= 0 || m.Delay < 0 {
		return false
	}
	m.originalVolume = sabrtypes.Volume(float64(info.End-info.Start) * float64(m.Rate))

	return true
}

// OriginalVolume reports the contact's pre-allocated capacity.
func (m *QD) OriginalVolume() sabrtypes.Volume { return m.originalVolume }

// queueStart is the virtual earliest-usable time once the already-
// booked queue has drained: info.Start shifted forward by booked/rate.
func (m *QD) queueStart(info contact.Info) sabrtypes.Date {
	return info.Start + sabrtypes.Date(float64(m.booked)/float64(m.Rate))
}

func (m *QD) admit(info contact.Info, at sabrtypes.Date, size sabrtypes.Volume) (contact.TxHop, bool) {
	if m.booked+size > m.originalVolume {
		return contact.TxHop{}, false
	}
	txStart := maxDate(at, m.queueStart(info))
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
func (m *QD) DryRunTx(info contact.Info, at sabrtypes.Date, b *bundle.Bundle) (contact.TxHop, bool) {
	return m.admit(info, at, b.Size)
}

// ScheduleTx repeats the DryRunTx predicate and, on success, extends the
// booked queue.
func (m *QD) ScheduleTx(info contact.Info, at sabrtypes.Date, b *bundle.Bundle) (contact.TxHop, bool) {
	hop, ok := m.admit(info, at, b.Size)
	if ok {
		m.booked += b.Size
	}

	return hop, ok
}
