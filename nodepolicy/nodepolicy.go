// Package nodepolicy provides concrete NodeManager implementations:
// processing-time inflation (with optional compression) and a
// transmit-side retention window. Both are optional per spec §4.2; a
// Node simply leaves Manager nil to opt out of all hooks, or sets it to
// one of these to opt into exactly the hooks it implements.
package nodepolicy

import (
	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// Compression inflates or deflates a bundle's size by a fixed ratio
// during processing, e.g. compression or re-framing overhead.
type Compression struct {
	// ProcessingTime is added to the earliest send time.
	ProcessingTime sabrtypes.Duration

	// Ratio multiplies Bundle.Size; 1.0 is a no-op size-wise.
	Ratio float64
}

var _ interface {
	DryRunProcess(sabrtypes.Date, *bundle.Bundle) (sabrtypes.Date, *bundle.Bundle)
	ScheduleProcess(sabrtypes.Date, *bundle.Bundle) (sabrtypes.Date, *bundle.Bundle)
} = (*Compression)(nil)

// DryRunProcess returns the earliest send time after processing delay
// and a bundle copy with Size scaled by Ratio; it does not mutate the
// input.
func (c *Compression) DryRunProcess(at sabrtypes.Date, b *bundle.Bundle) (sabrtypes.Date, *bundle.Bundle) {
	out := b.Clone()
	out.Size = sabrtypes.Volume(float64(b.Size) * c.Ratio)

	return at + sabrtypes.Date(c.ProcessingTime), out
}

// ScheduleProcess commits the same transformation as DryRunProcess;
// Compression carries no state of its own, so there is nothing further
// to commit.
func (c *Compression) ScheduleProcess(at sabrtypes.Date, b *bundle.Bundle) (sabrtypes.Date, *bundle.Bundle) {
	return c.DryRunProcess(at, b)
}

// RetentionWindow refuses to hold a bundle at the transmitting node
// past a maximum wait since it first became eligible to send.
type RetentionWindow struct {
	MaxRetention sabrtypes.Duration
}

var _ interface {
	DryRunTx(waitingSince, start, end sabrtypes.Date, b *bundle.Bundle) bool
	ScheduleTx(waitingSince, start, end sabrtypes.Date, b *bundle.Bundle) bool
} = (*RetentionWindow)(nil)

// DryRunTx admits the transmission if the elapsed wait does not exceed
// MaxRetention.
func (r *RetentionWindow) DryRunTx(waitingSince, start, _ sabrtypes.Date, _ *bundle.Bundle) bool {
	return start-waitingSince <= sabrtypes.Date(r.MaxRetention)
}

// ScheduleTx applies the identical, stateless admission test.
func (r *RetentionWindow) ScheduleTx(waitingSince, start, end sabrtypes.Date, b *bundle.Bundle) bool {
	return r.DryRunTx(waitingSince, start, end, b)
}
