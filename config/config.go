// Package config builds a RouterConfig, the file-loadable description
// of how to construct a router package instance, following the
// teacher's functional-options idiom (dijkstra.Option,
// core.GraphOption): an exported config struct, a public Option func type,
// and a set of With* constructors that validate their own argument and
// report a sentinel error rather than panicking.
//
// No third-party configuration-loading library appears anywhere in the
// retrieval pack (only an indirect, transitive mapstructure dependency
// of unrelated services), so file (de)serialization here is plain
// encoding/json — the one ambient concern this module carries on the
// standard library; see DESIGN.md.
package config

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/katalvlaran/sabr-route/pathfind"
	"github.com/katalvlaran/sabr-route/routestage"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// Sentinel errors for Option application.
var (
	// ErrNonPositiveCacheCapacity indicates a cache capacity option was
	// given a value <= 0.
	ErrNonPositiveCacheCapacity = errors.New("config: cache capacity must be positive")

	// ErrUnknownDistance indicates RouterConfig.Distance named a value
	// other than "sabr" or "hop".
	ErrUnknownDistance = errors.New("config: unknown distance strategy name")

	// ErrUnknownRouterKind indicates RouterConfig.Kind named a value
	// other than "spsn", "cgr" or "vol_cgr".
	ErrUnknownRouterKind = errors.New("config: unknown router kind")
)

// RouterKind names which router package type a RouterConfig builds.
type RouterKind string

// Recognized RouterKind values.
const (
	KindSPSN   RouterKind = "spsn"
	KindCGR    RouterKind = "cgr"
	KindVolCgr RouterKind = "vol_cgr"
)

// DistanceName names which routestage.Distance strategy a RouterConfig
// selects.
type DistanceName string

// Recognized DistanceName values.
const (
	DistanceSABR DistanceName = "sabr"
	DistanceHop  DistanceName = "hop"
)

// RouterConfig is the JSON-serializable description of a router
// instance: which strategy, which distance, what cache sizing and
// parenting mode to use. It is built either directly (as a struct
// literal for tests) or via Options applied over New's
// defaults, and is the shape (de)serialized to/from the CLI's
// configuration file.
type RouterConfig struct {
	Kind             RouterKind         `json:"kind"`
	Distance         DistanceName       `json:"distance"`
	Parenting        pathfind.Parenting `json:"parenting"`
	TreeCacheSize    int                `json:"tree_cache_size,omitempty"`
	MaxUnicastVolume sabrtypes.Volume   `json:"max_unicast_volume,omitempty"`
}

// Option mutates a RouterConfig under construction; each validates its
// own argument before applying it.
type Option func(*RouterConfig) error

// New builds a RouterConfig defaulting to SPSN/SABR/node-parenting with
// a tree cache of 64 entries, applying opts in order and stopping at
// the first error.
func New(opts ...Option) (RouterConfig, error) {
	cfg := RouterConfig{
		Kind:          KindSPSN,
		Distance:      DistanceSABR,
		Parenting:     pathfind.NodeParenting,
		TreeCacheSize: 64,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return RouterConfig{}, err
		}
	}

	return cfg, nil
}

// WithKind selects which router package type to build.
func WithKind(kind RouterKind) Option {
	return func(c *RouterConfig) error {
		switch kind {
		case KindSPSN, KindCGR, KindVolCgr:
			c.Kind = kind

			return nil
		default:
			return ErrUnknownRouterKind
		}
	}
}

// WithDistance selects the routestage.Distance strategy by name.
func WithDistance(name DistanceName) Option {
	return func(c *RouterConfig) error {
		switch name {
		case DistanceSABR, DistanceHop:
			c.Distance = name

			return nil
		default:
			return ErrUnknownDistance
		}
	}
}

// WithParenting selects the pathfind.Parenting strategy.
func WithParenting(p pathfind.Parenting) Option {
	return func(c *RouterConfig) error {
		c.Parenting = p

		return nil
	}
}

// WithTreeCacheSize bounds an SPSN router's TreeCache capacity.
func WithTreeCacheSize(n int) Option {
	return func(c *RouterConfig) error {
		if n <= 0 {
			return ErrNonPositiveCacheCapacity
		}
		c.TreeCacheSize = n

		return nil
	}
}

// WithMaxUnicastVolume sets an SPSN router's unicast volume guard; zero
// (the default) means unbounded.
func WithMaxUnicastVolume(v sabrtypes.Volume) Option {
	return func(c *RouterConfig) error {
		c.MaxUnicastVolume = v

		return nil
	}
}

// ResolveDistance maps a RouterConfig's Distance name to the concrete
// routestage.Distance strategy it names.
func ResolveDistance(name DistanceName) (routestage.Distance, error) {
	switch name {
	case DistanceSABR:
		return routestage.SABR{}, nil
	case DistanceHop:
		return routestage.Hop{}, nil
	default:
		return nil, ErrUnknownDistance
	}
}

// Encode writes cfg to w as JSON.
func Encode(w io.Writer, cfg RouterConfig) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(cfg)
}

// Decode reads a RouterConfig from r as JSON.
func Decode(r io.Reader) (RouterConfig, error) {
	var cfg RouterConfig
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return RouterConfig{}, err
	}

	return cfg, nil
}
