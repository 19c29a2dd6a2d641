package nodepolicy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/nodepolicy"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

func TestCompression_DryRunProcessScalesSizeAndDelaysStart(t *testing.T) {
	c := &nodepolicy.Compression{ProcessingTime: 5, Ratio: 0.5}
	b, err := bundle.New(0, []sabrtypes.NodeID{1}, 0, 100, 0, sabrtypes.MaxDate)
	require.NoError(t, err)

	at, out := c.DryRunProcess(10, b)
	assert.Equal(t, sabrtypes.Date(15), at)
	assert.Equal(t, sabrtypes.Volume(50), out.Size)
	assert.Equal(t, sabrtypes.Volume(100), b.Size, "DryRunProcess must not mutate the input bundle")
}

func TestCompression_ScheduleProcessMatchesDryRun(t *testing.T) {
	c := &nodepolicy.Compression{ProcessingTime: 2, Ratio: 2.0}
	b, err := bundle.New(0, []sabrtypes.NodeID{1}, 0, 10, 0, sabrtypes.MaxDate)
	require.NoError(t, err)

	dryAt, dryOut := c.DryRunProcess(0, b)
	schedAt, schedOut := c.ScheduleProcess(0, b)
	assert.Equal(t, dryAt, schedAt)
	assert.Equal(t, dryOut.Size, schedOut.Size)
}

func TestRetentionWindow_AdmitsWithinMaxRetention(t *testing.T) {
	r := &nodepolicy.RetentionWindow{MaxRetention: 10}
	assert.True(t, r.DryRunTx(0, 10, 20, nil))
	assert.True(t, r.DryRunTx(0, 0, 20, nil))
}

func TestRetentionWindow_RejectsBeyondMaxRetention(t *testing.T) {
	r := &nodepolicy.RetentionWindow{MaxRetention: 5}
	assert.False(t, r.DryRunTx(0, 6, 20, nil))
}

func TestRetentionWindow_ScheduleTxMatchesDryRun(t *testing.T) {
	r := &nodepolicy.RetentionWindow{MaxRetention: 5}
	assert.Equal(t, r.DryRunTx(0, 5, 20, nil), r.ScheduleTx(0, 5, 20, nil))
}
