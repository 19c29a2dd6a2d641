package contactmgr

import (
	"sort"

	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/contact"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// Segment is one piecewise-constant rate/delay slice of a SEG contact.
// Segments must tile [contact.Info.Start, contact.Info.End) without gap
// or overlap, in ascending Start order.
type Segment struct {
	Start, End sabrtypes.Date
	Rate       sabrtypes.Rate
	Delay      sabrtypes.Duration
}

type interval struct {
	start, end sabrtypes.Date
}

// SEG is the Segmentation contact manager: a contact built from
// contiguous rate/delay Segments. Capacity bookkeeping is a list of
// free time intervals rather than a single residual-volume scalar, so
// that a cancellation (not modeled by this spec, but future-proofed by
// the representation) could reclaim exactly the interval it used.
//
// Per spec §9's Open Question on stale tx_start values: ScheduleTx
// always replays the interval split using the tx_start/tx_end that
// DryRunTx itself computed, never a value recomputed from a different
// loop iteration.
type SEG struct {
	Segments []Segment

	free           []interval
	originalVolume sabrtypes.Volume
}

// NewSEG constructs a SEG manager over the given segments. Segments are
// copied and sorted by Start before TryInit validates tiling.
func NewSEG(segments []Segment) *SEG {
	cp := make([]Segment, len(segments))
	copy(cp, segments)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Start < cp[j].Start })

	return &SEG{Segments: cp}
}

// TryInit validates that segments tile [info.Start, info.End) exactly,
// with non-negative rate and delay, and computes the contact's original
// volume and initial single free interval.
func (m *SEG) TryInit(info contact.Info) bool {
	if len(m.Segments) == 0 {
		return false
	}
	cursor := info.Start
	var vol float64
	for _, seg := range m.Segments {
		if seg.Start != cursor || seg.End <= seg.Start || seg.Rate < 0 || seg.Delay < 0 {
			return false
		}
		vol += float64(seg.End-seg.Start) * float64(seg.Rate)
		cursor = seg.End
	}
	if cursor != info.End {
		return false
	}
	m.originalVolume = sabrtypes.Volume(vol)
	m.free = []interval{{start: info.Start, end: info.End}}

	return true
}

// OriginalVolume reports the contact's total pre-allocated capacity.
func (m *SEG) OriginalVolume() sabrtypes.Volume { return m.originalVolume }

// segmentAt returns the segment covering t, or the last segment if t ==
// info.End.
func (m *SEG) segmentAt(t sabrtypes.Date) (Segment, bool) {
	for _, seg := range m.Segments {
		if t >= seg.Start && t < seg.End {
			return seg, true
		}
	}
	if n := len(m.Segments); n > 0 && t == m.Segments[n-1].End {
		return m.Segments[n-1], true
	}

	return Segment{}, false
}

// txEndFor walks segments from txStart, integrating variable rate,
// until `needed` volume has been accounted for, returning the absolute
// time at which that volume has been transmitted. ok is false if the
// window runs out first.
func (m *SEG) txEndFor(txStart sabrtypes.Date, needed sabrtypes.Volume) (sabrtypes.Date, bool) {
	remaining := float64(needed)
	cur := txStart
	for _, seg := range m.Segments {
		if seg.End <= cur {
			continue
		}
		segStart := cur
		if segStart < seg.Start {
			segStart = seg.Start
		}
		capacity := float64(seg.End-segStart) * float64(seg.Rate)
		if capacity >= remaining {
			if seg.Rate == 0 {
				return seg.End, remaining == 0
			}

			return segStart + sabrtypes.Date(remaining/float64(seg.Rate)), true
		}
		remaining -= capacity
		cur = seg.End
	}

	return 0, false
}

// findFit locates the earliest free interval that can accommodate
// `size` starting no earlier than `at`, returning the interval's index,
// the actual tx start within it, and the computed tx end.
func (m *SEG) findFit(at sabrtypes.Date, size sabrtypes.Volume) (idx int, txStart, txEnd sabrtypes.Date, ok bool) {
	for i, fi := range m.free {
		if fi.end <= at {
			continue
		}
		start := at
		if start < fi.start {
			start = fi.start
		}
		end, fits := m.txEndFor(start, size)
		if fits && end <= fi.end {
			return i, start, end, true
		}
	}

	return 0, 0, 0, false
}

func (m *SEG) admit(info contact.Info, at sabrtypes.Date, size sabrtypes.Volume) (contact.TxHop, bool, int) {
	idx, txStart, txEnd, ok := m.findFit(at, size)
	if !ok {
		return contact.TxHop{}, false, 0
	}
	seg, _ := m.segmentAt(txStart)

	return contact.TxHop{
		TxStart:    txStart,
		TxEnd:      txEnd,
		Delay:      seg.Delay,
		Expiration: info.End,
		Arrival:    txEnd + sabrtypes.Date(seg.Delay),
	}, true, idx
}

// DryRunTx is a pure admission test; it never mutates the free-interval
// list.
func (m *SEG) DryRunTx(info contact.Info, at sabrtypes.Date, b *bundle.Bundle) (contact.TxHop, bool) {
	hop, ok, _ := m.admit(info, at, b.Size)

	return hop, ok
}

// ScheduleTx recomputes the same admission as DryRunTx (never trusting
// a separately-recomputed tx_start/tx_end) and, on success, splits the
// matched free interval around [TxStart, TxEnd].
func (m *SEG) ScheduleTx(info contact.Info, at sabrtypes.Date, b *bundle.Bundle) (contact.TxHop, bool) {
	hop, ok, idx := m.admit(info, at, b.Size)
	if !ok {
		return hop, false
	}

	fi := m.free[idx]
	replacement := make([]interval, 0, 2)
	if fi.start < hop.TxStart {
		replacement = append(replacement, interval{start: fi.start, end: hop.TxStart})
	}
	if hop.TxEnd < fi.end {
		replacement = append(replacement, interval{start: hop.TxEnd, end: fi.end})
	}
	next := make([]interval, 0, len(m.free)-1+len(replacement))
	next = append(next, m.free[:idx]...)
	next = append(next, replacement...)
	next = append(next, m.free[idx+1:]...)
	m.free = next

	return hop, true
}
