package tvgutil_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sabr-route/contactplan/tvgutil"
)

func TestParse_VerticesAndEdges(t *testing.T) {
	doc := `{
		"vertices": ["A", "B"],
		"edges": [{"from": "A", "to": "B", "start": 0, "end": 10, "rate": 100, "delay": 1}]
	}`

	nodes, contacts, err := tvgutil.Parser{}.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Len(t, contacts, 1)
}

func TestParse_MalformedJSONIsAnError(t *testing.T) {
	_, _, err := tvgutil.Parser{}.Parse(strings.NewReader("{not json"))
	require.Error(t, err)
}
