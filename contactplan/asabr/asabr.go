// Package asabr parses the A-SABR line format:
//
//	node <name>
//	contact <from> <to> <start> <end> <rate> <delay> [marker]
//
// marker selects the contact's resource model (eto, qd, evl, seg);
// when omitted, the Parser's configured DefaultManager applies. This
// is the one format whose directive carries per-contact manager
// selection, mirroring spec.md §1's "generic parser-dispatch mechanism
// that permits pluggable contact/node manager types".
package asabr

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/sabr-route/contact"
	"github.com/katalvlaran/sabr-route/contactmgr"
	"github.com/katalvlaran/sabr-route/contactplan"
	"github.com/katalvlaran/sabr-route/node"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

func init() {
	contactplan.Register("asabr", func() contactplan.Parser { return &Parser{DefaultManager: "evl"} })
}

// Parser implements contactplan.Parser for the A-SABR format.
type Parser struct {
	// DefaultManager is the marker used for a contact directive that
	// omits its own marker field.
	DefaultManager string
}

// Parse reads an A-SABR document from r.
func (p Parser) Parse(r io.Reader) ([]*node.Node, []*contact.Contact, error) {
	namer := contactplan.NewNodeNamer()
	var contacts []*contact.Contact

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "node":
			if len(fields) != 2 {
				return nil, nil, &contactplan.ParseError{Format: "asabr", Line: lineNo, Cause: fmt.Errorf("expected 2 fields, got %d", len(fields))}
			}
			namer.IDFor(fields[1])

		case "contact":
			if len(fields) < 7 {
				return nil, nil, &contactplan.ParseError{Format: "asabr", Line: lineNo, Cause: fmt.Errorf("expected at least 7 fields, got %d", len(fields))}
			}
			start, err := strconv.ParseInt(fields[3], 10, 64)
			if err != nil {
				return nil, nil, &contactplan.ParseError{Format: "asabr", Line: lineNo, Cause: err}
			}
			end, err := strconv.ParseInt(fields[4], 10, 64)
			if err != nil {
				return nil, nil, &contactplan.ParseError{Format: "asabr", Line: lineNo, Cause: err}
			}
			rate, err := strconv.ParseFloat(fields[5], 64)
			if err != nil {
				return nil, nil, &contactplan.ParseError{Format: "asabr", Line: lineNo, Cause: err}
			}
			delay, err := strconv.ParseFloat(fields[6], 64)
			if err != nil {
				return nil, nil, &contactplan.ParseError{Format: "asabr", Line: lineNo, Cause: err}
			}

			marker := p.DefaultManager
			if len(fields) >= 8 {
				marker = fields[7]
			}
			mgr, err := newManager(marker, sabrtypes.Date(start), sabrtypes.Date(end), sabrtypes.Rate(rate), sabrtypes.Duration(delay))
			if err != nil {
				return nil, nil, &contactplan.ParseError{Format: "asabr", Line: lineNo, Cause: err}
			}

			tx := sabrtypes.NodeID(namer.IDFor(fields[1]))
			rx := sabrtypes.NodeID(namer.IDFor(fields[2]))
			info, err := contact.NewInfo(tx, rx, sabrtypes.Date(start), sabrtypes.Date(end))
			if err != nil {
				return nil, nil, &contactplan.ParseError{Format: "asabr", Line: lineNo, Cause: err}
			}
			contacts = append(contacts, contact.New(info, mgr))

		default:
			return nil, nil, &contactplan.ParseError{Format: "asabr", Line: lineNo, Cause: fmt.Errorf("unknown directive %q", fields[0])}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, &contactplan.ParseError{Format: "asabr", Line: lineNo, Cause: err}
	}

	return namer.Nodes(), contacts, nil
}

// newManager dispatches a marker string to the contactmgr constructor
// it names. A seg contact gets a single segment spanning its whole
// window, since the line format carries only one rate/delay pair per
// contact directive.
func newManager(marker string, start, end sabrtypes.Date, rate sabrtypes.Rate, delay sabrtypes.Duration) (contact.Manager, error) {
	switch marker {
	case "evl":
		return contactmgr.NewEVL(rate, delay), nil
	case "qd":
		return contactmgr.NewQD(rate, delay), nil
	case "eto":
		return contactmgr.NewETO(rate, delay), nil
	case "seg":
		return contactmgr.NewSEG([]contactmgr.Segment{{Start: start, End: end, Rate: rate, Delay: delay}}), nil
	default:
		return nil, fmt.Errorf("asabr: unknown manager marker %q", marker)
	}
}
