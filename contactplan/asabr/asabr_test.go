package asabr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sabr-route/contactplan/asabr"
)

func TestParse_DefaultManager(t *testing.T) {
	doc := strings.Join([]string{
		"node A",
		"node B",
		"contact A B 0 10 100 1",
	}, "\n")

	nodes, contacts, err := asabr.Parser{DefaultManager: "evl"}.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Len(t, contacts, 1)
}

func TestParse_ExplicitMarkerSelectsManager(t *testing.T) {
	doc := "contact A B 0 10 100 1 seg"

	_, contacts, err := asabr.Parser{DefaultManager: "evl"}.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, contacts, 1)
}

func TestParse_UnknownMarkerIsAnError(t *testing.T) {
	doc := "contact A B 0 10 100 1 bogus"

	_, _, err := asabr.Parser{DefaultManager: "evl"}.Parse(strings.NewReader(doc))
	assert.Error(t, err)
}
