// Package ion parses ION-style contact plan documents: whitespace-
// separated directive lines of the form
//
//	a contact <start> <end> <from> <to> <rate>
//	a range   <start> <end> <from> <to> <owlt>
//
// Node names are assigned contiguous ids in first-seen order. Every
// contact directive must be matched by exactly one range directive
// covering the same (from, to, start, end) window, supplying the
// one-way light time ION keeps as a separate record; an unmatched
// contact is a parse error.
package ion

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
	contactplan.Register("ion", func() contactplan.Parser { return &Parser{} })
}

type pendingContact struct {
	from, to   string
	start, end sabrtypes.Date
	rate       sabrtypes.Rate
	line       int
}

// Parser implements contactplan.Parser for the ION format.
type Parser struct{}

// Parse reads an ION contact plan document from r.
func (Parser) Parse(r io.Reader) ([]*node.Node, []*contact.Contact, error) {
	namer := contactplan.NewNodeNamer()
	var pending []pendingContact
	owlt := make(map[[4]string]sabrtypes.Duration) // (from,to,start,end) -> delay

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != "a" {
			continue
		}
		if len(fields) < 7 {
			return nil, nil, &contactplan.ParseError{Format: "ion", Line: lineNo, Cause: fmt.Errorf("expected at least 7 fields, got %d", len(fields))}
		}

		switch fields[1] {
		case "contact":
			start, end, err := parseWindow(fields[2], fields[3])
			if err != nil {
				return nil, nil, &contactplan.ParseError{Format: "ion", Line: lineNo, Cause: err}
			}
			rate, err := strconv.ParseFloat(fields[6], 64)
			if err != nil {
				return nil, nil, &contactplan.ParseError{Format: "ion", Line: lineNo, Cause: fmt.Errorf("bad rate %q: %w", fields[6], err)}
			}
			pending = append(pending, pendingContact{
				from: fields[4], to: fields[5],
				start: start, end: end,
				rate: sabrtypes.Rate(rate),
				line: lineNo,
			})

		case "range":
			start, end, err := parseWindow(fields[2], fields[3])
			if err != nil {
				return nil, nil, &contactplan.ParseError{Format: "ion", Line: lineNo, Cause: err}
			}
			delay, err := strconv.ParseFloat(fields[6], 64)
			if err != nil {
				return nil, nil, &contactplan.ParseError{Format: "ion", Line: lineNo, Cause: fmt.Errorf("bad owlt %q: %w", fields[6], err)}
			}
			key := [4]string{fields[4], fields[5], fields[2], fields[3]}
			owlt[key] = sabrtypes.Duration(delay)
			_ = start
			_ = end

		default:
			return nil, nil, &contactplan.ParseError{Format: "ion", Line: lineNo, Cause: fmt.Errorf("unknown directive %q", fields[1])}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, &contactplan.ParseError{Format: "ion", Line: lineNo, Cause: err}
	}

	contacts := make([]*contact.Contact, 0, len(pending))
	for _, pc := range pending {
		key := [4]string{pc.from, pc.to, formatDate(pc.start), formatDate(pc.end)}
		delay, ok := owlt[key]
		if !ok {
			return nil, nil, &contactplan.ParseError{Format: "ion", Line: pc.line, Cause: fmt.Errorf("contact %s->%s has no matching range directive", pc.from, pc.to)}
		}

		tx := sabrtypes.NodeID(namer.IDFor(pc.from))
		rx := sabrtypes.NodeID(namer.IDFor(pc.to))
		info, err := contact.NewInfo(tx, rx, pc.start, pc.end)
		if err != nil {
			return nil, nil, &contactplan.ParseError{Format: "ion", Line: pc.line, Cause: err}
		}
		contacts = append(contacts, contact.New(info, contactmgr.NewEVL(pc.rate, delay)))
	}

	return namer.Nodes(), contacts, nil
}

func parseWindow(startField, endField string) (sabrtypes.Date, sabrtypes.Date, error) {
	start, err := strconv.ParseInt(startField, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad start %q: %w", startField, err)
	}
	end, err := strconv.ParseInt(endField, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad end %q: %w", endField, err)
	}

	return sabrtypes.Date(start), sabrtypes.Date(end), nil
}

func formatDate(d sabrtypes.Date) string { return strconv.FormatInt(int64(d), 10) }
