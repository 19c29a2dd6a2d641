package contactmgr

import (
	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/contact"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// ETO is the Earliest-Transmission-Opportunity contact manager. Its
// admission math is identical to QD, but ScheduleTx never commits a
// booking on its own: residual volume only ever changes via an
// external ManualEnqueue/ManualDequeue call, which the caller issues
// once it actually knows a bundle was enqueued or removed from the
// real transmission queue this manager models.
type ETO struct {
	Rate  sabrtypes.Rate
	Delay sabrtypes.Duration

	booked         sabrtypes.Volume
	originalVolume sabrtypes.Volume
}

// NewETO constructs an ETO manager with the given rate and one-way
// delay.
func NewETO(rate sabrtypes.Rate, delay sabrtypes.Duration) *ETO {
	return &ETO{Rate: rate, Delay: delay}
}

// TryInit validates rate/delay and computes the contact's original
// volume.
func (m *ETO) TryInit(info contact.Info) bool {
	if m.Rate <= 0 || m.Delay < 0 {
		return false
	}
	m.originalVolume = sabrtypes.Volume(float64(info.End-info.Start) * float64(m.Rate))

	return true
}

// OriginalVolume reports the contact's pre-allocated capacity.
func (m *ETO) OriginalVolume() sabrtypes.Volume { return m.originalVolume }

func (m *ETO) queueStart(info contact.Info) sabrtypes.Date {
	return info.Start + sabrtypes.Date(float64(m.booked)/float64(m.Rate))
}

func (m *ETO) admit(info contact.Info, at sabrtypes.Date, size sabrtypes.Volume) (contact.TxHop, bool) {
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
func (m *ETO) DryRunTx(info contact.Info, at sabrtypes.Date, b *bundle.Bundle) (contact.TxHop, bool) {
	return m.admit(info, at, b.Size)
}

// ScheduleTx repeats the DryRunTx predicate but does not commit: ETO's
// residual volume is only ever changed by ManualEnqueue/ManualDequeue.
func (m *ETO) ScheduleTx(info contact.Info, at sabrtypes.Date, b *bundle.Bundle) (contact.TxHop, bool) {
	return m.admit(info, at, b.Size)
}

// ManualEnqueue books size against the residual volume directly,
// bypassing the dry-run/schedule pair. Returns false if it would
// overbook the contact.
func (m *ETO) ManualEnqueue(b *bundle.Bundle) bool {
	if m.booked+b.Size > m.originalVolume {
		return false
	}
	m.booked += b.Size

	return true
}

// ManualDequeue releases size previously booked via ManualEnqueue (or a
// committed ScheduleTx on a sibling manager feeding the same real
// queue). Returns false if it would underflow booked below zero.
func (m *ETO) ManualDequeue(b *bundle.Bundle) bool {
	if b.Size > m.booked {
		return false
	}
	m.booked -= b.Size

	return true
}
