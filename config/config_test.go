package config_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sabr-route/config"
	"github.com/katalvlaran/sabr-route/pathfind"
	"github.com/katalvlaran/sabr-route/routestage"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)
	assert.Equal(t, config.KindSPSN, cfg.Kind)
	assert.Equal(t, config.DistanceSABR, cfg.Distance)
	assert.Equal(t, pathfind.NodeParenting, cfg.Parenting)
	assert.Equal(t, 64, cfg.TreeCacheSize)
}

func TestNew_AppliesOptionsInOrder(t *testing.T) {
	cfg, err := config.New(
		config.WithKind(config.KindCGR),
		config.WithDistance(config.DistanceHop),
		config.WithParenting(pathfind.MPT),
	)
	require.NoError(t, err)
	assert.Equal(t, config.KindCGR, cfg.Kind)
	assert.Equal(t, config.DistanceHop, cfg.Distance)
	assert.Equal(t, pathfind.MPT, cfg.Parenting)
}

func TestNew_RejectsUnknownKind(t *testing.T) {
	_, err := config.New(config.WithKind("bogus"))
	assert.ErrorIs(t, err, config.ErrUnknownRouterKind)
}

func TestNew_RejectsNonPositiveCacheSize(t *testing.T) {
	_, err := config.New(config.WithTreeCacheSize(0))
	assert.ErrorIs(t, err, config.ErrNonPositiveCacheCapacity)
}

func TestEncodeDecode_RoundTrips(t *testing.T) {
	cfg, err := config.New(config.WithKind(config.KindVolCgr))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, config.Encode(&buf, cfg))

	decoded, err := config.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}

func TestResolveDistance(t *testing.T) {
	d, err := config.ResolveDistance(config.DistanceSABR)
	require.NoError(t, err)
	assert.IsType(t, routestage.SABR{}, d)

	_, err = config.ResolveDistance("bogus")
	assert.ErrorIs(t, err, config.ErrUnknownDistance)
}
