package contact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sabr-route/contact"
)

func TestNewInfo_RejectsNonStrictWindow(t *testing.T) {
	_, err := contact.NewInfo(0, 1, 10, 10)
	assert.ErrorIs(t, err, contact.ErrBadWindow)

	_, err = contact.NewInfo(0, 1, 10, 5)
	assert.ErrorIs(t, err, contact.ErrBadWindow)
}

func TestNewInfo_RejectsSelfLoop(t *testing.T) {
	_, err := contact.NewInfo(3, 3, 0, 10)
	assert.ErrorIs(t, err, contact.ErrSelfLoop)
}

func TestNewInfo_AcceptsValidWindow(t *testing.T) {
	info, err := contact.NewInfo(0, 1, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, contact.Info{Tx: 0, Rx: 1, Start: 0, End: 10}, info)
}

func TestContact_ResetWorkAreaClearsScratchState(t *testing.T) {
	info, err := contact.NewInfo(0, 1, 0, 10)
	require.NoError(t, err)
	c := contact.New(info, nil)
	c.WorkArea = "some label"

	c.ResetWorkArea()
	assert.Nil(t, c.WorkArea)
}
