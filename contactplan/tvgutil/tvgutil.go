// Package tvgutil parses the tvg-util JSON contact-plan format: a
// document with a "vertices" array of node names and an "edges" array
// of directed, time-windowed, rated contacts.
package tvgutil

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/katalvlaran/sabr-route/contact"
	"github.com/katalvlaran/sabr-route/contactmgr"
	"github.com/katalvlaran/sabr-route/contactplan"
	"github.com/katalvlaran/sabr-route/node"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

func init() {
	contactplan.Register("tvgutil", func() contactplan.Parser { return &Parser{} })
}

type document struct {
	Vertices []string `json:"vertices"`
	Edges    []edge   `json:"edges"`
}

type edge struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Start int64   `json:"start"`
	End   int64   `json:"end"`
	Rate  float64 `json:"rate"`
	Delay float64 `json:"delay"`
}

// Parser implements contactplan.Parser for the tvg-util format.
type Parser struct{}

// Parse reads a tvg-util document from r.
func (Parser) Parse(r io.Reader) ([]*node.Node, []*contact.Contact, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, &contactplan.ParseError{Format: "tvgutil", Line: 0, Cause: err}
	}

	namer := contactplan.NewNodeNamer()
	for _, v := range doc.Vertices {
		namer.IDFor(v)
	}

	contacts := make([]*contact.Contact, 0, len(doc.Edges))
	for i, e := range doc.Edges {
		tx := sabrtypes.NodeID(namer.IDFor(e.From))
		rx := sabrtypes.NodeID(namer.IDFor(e.To))
		info, err := contact.NewInfo(tx, rx, sabrtypes.Date(e.Start), sabrtypes.Date(e.End))
		if err != nil {
			return nil, nil, &contactplan.ParseError{Format: "tvgutil", Line: i, Cause: fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)}
		}
		mgr := contactmgr.NewEVL(sabrtypes.Rate(e.Rate), sabrtypes.Duration(e.Delay))
		contacts = append(contacts, contact.New(info, mgr))
	}

	return namer.Nodes(), contacts, nil
}
