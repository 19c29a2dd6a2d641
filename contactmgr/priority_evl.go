package contactmgr

import (
	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/contact"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// PriorityEVL is the priority-aware Effective Volume Limit manager.
// Admission for a bundle at priority p checks only booked[p] against
// the contact's shared original volume; committing a bundle at
// priority p charges its size against bookings at every priority
// 0..p (inclusive), so lower priorities always see the full picture of
// what higher priorities have consumed, while a priority level never
// sees consumption it did not itself contend for. This is the charging
// scheme spec §9 calls out as the one this reimplementation follows.
type PriorityEVL struct {
	Rate        sabrtypes.Rate
	Delay       sabrtypes.Duration
	MaxPriority sabrtypes.Priority

	booked         []sabrtypes.Volume // index 0..MaxPriority
	originalVolume sabrtypes.Volume
}

// NewPriorityEVL constructs a PriorityEVL manager supporting priorities
// 0..maxPriority inclusive.
func NewPriorityEVL(rate sabrtypes.Rate, delay sabrtypes.Duration, maxPriority sabrtypes.Priority) *PriorityEVL {
	return &PriorityEVL{Rate: rate, Delay: delay, MaxPriority: maxPriority}
}

// TryInit validates rate/delay, computes original volume and allocates
// the per-priority booking ledger.
func (m *PriorityEVL) TryInit(info contact.Info) bool {
	if m.Rate <= 0 || m.Delay < 0 {
		return false
	}
	m.originalVolume = sabrtypes.Volume(float64(info.End-info.Start) * float64(m.Rate))
	m.booked = make([]sabrtypes.Volume, m.MaxPriority+1)

	return true
}

// OriginalVolume reports the contact's pre-allocated capacity.
func (m *PriorityEVL) OriginalVolume() sabrtypes.Volume { return m.originalVolume }

func (m *PriorityEVL) bookedAt(p sabrtypes.Priority) sabrtypes.Volume {
	if int(p) >= len(m.booked) {
		return m.originalVolume // out-of-range priority: treat as fully consumed, refuse.
	}

	return m.booked[p]
}

func (m *PriorityEVL) admit(info contact.Info, at sabrtypes.Date, size sabrtypes.Volume, p sabrtypes.Priority) (contact.TxHop, bool) {
	if m.bookedAt(p)+size > m.originalVolume {
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

// DryRunTx is a pure admission test keyed on b.Priority; it never
// mutates m.
func (m *PriorityEVL) DryRunTx(info contact.Info, at sabrtypes.Date, b *bundle.Bundle) (contact.TxHop, bool) {
	return m.admit(info, at, b.Size, b.Priority)
}

// ScheduleTx repeats the DryRunTx predicate and, on success, charges
// b.Size against every priority level 0..b.Priority.
func (m *PriorityEVL) ScheduleTx(info contact.Info, at sabrtypes.Date, b *bundle.Bundle) (contact.TxHop, bool) {
	hop, ok := m.admit(info, at, b.Size, b.Priority)
	if !ok {
		return hop, false
	}
	top := int(b.Priority)
	if top >= len(m.booked) {
		top = len(m.booked) - 1
	}
	for q := 0; q <= top; q++ {
		m.booked[q] += b.Size
	}

	return hop, true
}

// BudgetedPriorityEVL adds a hard per-priority volume cap on top of
// PriorityEVL's shared-ledger charging: a bundle at priority p must fit
// both under the contact's total original volume and under that
// priority's own Budget[p].
type BudgetedPriorityEVL struct {
	PriorityEVL
	Budget []sabrtypes.Volume // index 0..MaxPriority
}

// NewBudgetedPriorityEVL constructs a BudgetedPriorityEVL manager.
// budget must have length maxPriority+1.
func NewBudgetedPriorityEVL(rate sabrtypes.Rate, delay sabrtypes.Duration, maxPriority sabrtypes.Priority, budget []sabrtypes.Volume) *BudgetedPriorityEVL {
	return &BudgetedPriorityEVL{
		PriorityEVL: PriorityEVL{Rate: rate, Delay: delay, MaxPriority: maxPriority},
		Budget:      budget,
	}
}

// TryInit additionally validates the budget slice's length.
func (m *BudgetedPriorityEVL) TryInit(info contact.Info) bool {
	if len(m.Budget) != int(m.MaxPriority)+1 {
		return false
	}

	return m.PriorityEVL.TryInit(info)
}

func (m *BudgetedPriorityEVL) admitBudgeted(info contact.Info, at sabrtypes.Date, size sabrtypes.Volume, p sabrtypes.Priority) (contact.TxHop, bool) {
	idx := int(p)
	if idx >= len(m.Budget) {
		return contact.TxHop{}, false
	}
	if m.booked[idx]+size > m.Budget[idx] {
		return contact.TxHop{}, false
	}

	return m.PriorityEVL.admit(info, at, size, p)
}

// DryRunTx checks both the shared volume ceiling and this priority's
// own budget cap.
func (m *BudgetedPriorityEVL) DryRunTx(info contact.Info, at sabrtypes.Date, b *bundle.Bundle) (contact.TxHop, bool) {
	return m.admitBudgeted(info, at, b.Size, b.Priority)
}

// ScheduleTx repeats DryRunTx's budgeted predicate and, on success,
// charges every priority level 0..b.Priority as PriorityEVL does.
func (m *BudgetedPriorityEVL) ScheduleTx(info contact.Info, at sabrtypes.Date, b *bundle.Bundle) (contact.TxHop, bool) {
	hop, ok := m.admitBudgeted(info, at, b.Size, b.Priority)
	if !ok {
		return hop, false
	}
	top := int(b.Priority)
	for q := 0; q <= top; q++ {
		m.booked[q] += b.Size
	}

	return hop, true
}
