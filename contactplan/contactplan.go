// Package contactplan declares the common Parser contract every
// contact-plan format implements and the Registry that dispatches a
// format name to its constructor, mirroring the teacher's builder
// package's variant-registration style (a marker string selecting one
// of several pluggable implementations, resolved at init() time rather
// than with a type switch the core has to know about).
package contactplan

import (
	"fmt"
	"io"
	"sort"

	"github.com/katalvlaran/sabr-route/contact"
	"github.com/katalvlaran/sabr-route/node"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// Parser turns a contact-plan document into the node and contact sets
// multigraph.Build consumes.
type Parser interface {
	Parse(r io.Reader) ([]*node.Node, []*contact.Contact, error)
}

// ParseError is returned by every leaf parser for a malformed document.
// It names the format and the offending line so a CLI caller can print
// a precise diagnostic instead of a bare error string.
type ParseError struct {
	Format string
	Line   int
	Cause  error
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("contactplan: %s:%d: %v", e.Format, e.Line, e.Cause)
}

// Unwrap exposes Cause to errors.Is/errors.As.
func (e *ParseError) Unwrap() error { return e.Cause }

// Registry maps a contact-plan format marker to the constructor for
// its Parser. Leaf packages populate it from their own init().
type Registry struct {
	ctors map[string]func() Parser
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]func() Parser)}
}

// global is the process-wide registry leaf packages self-register
// into via their init(). Register, Lookup and Names operate only on
// this registry; a Registry built with NewRegistry has no methods of
// its own.
var global = NewRegistry()

// Register records ctor under name in the global registry. Leaf format
// packages call this from init(); a duplicate name is a programmer
// error and panics, since it can only happen from a build-time mistake
// (two packages claiming the same marker), never from parsed input.
func Register(name string, ctor func() Parser) {
	if _, dup := global.ctors[name]; dup {
		panic("contactplan: duplicate format registered: " + name)
	}
	global.ctors[name] = ctor
}

// Lookup resolves name to a freshly constructed Parser from the global
// registry.
func Lookup(name string) (Parser, bool) {
	ctor, ok := global.ctors[name]
	if !ok {
		return nil, false
	}

	return ctor(), true
}

// Names returns every format name currently registered, sorted.
func Names() []string {
	names := make([]string, 0, len(global.ctors))
	for n := range global.ctors {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// NodeNamer assigns stable node ids to names in first-seen order, the
// scheme ION and A-SABR contact plans both rely on since their
// documents reference nodes by name, not by the contiguous integer id
// multigraph.Build requires.
type NodeNamer struct {
	ids   map[string]int
	nodes []*node.Node
}

// NewNodeNamer constructs an empty NodeNamer.
func NewNodeNamer() *NodeNamer {
	return &NodeNamer{ids: make(map[string]int)}
}

// IDFor returns name's id, assigning the next sequential id and
// creating its Node on first use.
func (n *NodeNamer) IDFor(name string) int {
	if id, ok := n.ids[name]; ok {
		return id
	}
	id := len(n.nodes)
	n.ids[name] = id
	n.nodes = append(n.nodes, node.New(sabrtypes.NodeID(id), name, nil))

	return id
}

// Nodes returns every node created so far, in id order.
func (n *NodeNamer) Nodes() []*node.Node { return n.nodes }
