package ion_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sabr-route/contactplan/ion"
)

func TestParse_ContactAndRange(t *testing.T) {
	doc := strings.Join([]string{
		"a contact 0 10 A B 100",
		"a range 0 10 A B 2",
	}, "\n")

	nodes, contacts, err := ion.Parser{}.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Len(t, contacts, 1)
	assert.Equal(t, "A", nodes[0].Name)
	assert.Equal(t, "B", nodes[1].Name)
}

func TestParse_ContactWithoutRangeIsAnError(t *testing.T) {
	doc := "a contact 0 10 A B 100"

	_, _, err := ion.Parser{}.Parse(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestParse_UnknownDirectiveIsAnError(t *testing.T) {
	doc := "a bogus 0 10 A B 100"

	_, _, err := ion.Parser{}.Parse(strings.NewReader(doc))
	assert.Error(t, err)
}
