// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// _MINFREENODES is the minimal percentage of nodes that has to be left free
// after a garbage collection, unless a resize should be performed instead.
const _MINFREENODES int = 20

// _MAXREFCOUNT marks a node as "sticky" (never collected), used for
// terminals and other nodes a Manager must keep alive regardless of
// external references.
const _MAXREFCOUNT int32 = 1<<31 - 1

// _DEFAULTMAXNODEINC is the default cap on how many nodes the pool grows by
// after a garbage collection that leaves too few free nodes.
const _DEFAULTMAXNODEINC int = 1 << 20

// _DEFAULTNODESIZE is the default initial size of the node pool. Roomy
// enough that casual use never sees allocation pressure before the caller
// has had a chance to Ref the roots it keeps.
const _DEFAULTNODESIZE int = 10000

// configs stores the tunable parameters of a Manager, set through the
// functional options below.
type configs struct {
	varnum          int
	nodesize        int
	cachesize       int
	cacheratio      int
	maxnodesize     int
	maxnodeincrease int
	minfreenodes    int
	autoreorder     bool
}

func makeConfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.minfreenodes = _MINFREENODES
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	c.nodesize = _DEFAULTNODESIZE
	if min := 2*varnum + 2; c.nodesize < min {
		c.nodesize = min
	}
	c.cachesize = 10000
	return c
}

// Option configures a Manager created by New.
type Option func(*configs)

// Nodesize sets a preferred initial size for the node pool.
func Nodesize(size int) Option {
	return func(c *configs) {
		if size >= 2*c.varnum+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize sets a live-node count at or above which allocating a new node
// schedules a garbage collection for the end of the current operation; the
// allocation itself still succeeds, so the count is not a hard cap. The
// default (0) disables this trigger.
func Maxnodesize(size int) Option {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease caps how many nodes the pool grows by after a garbage
// collection that leaves too few free nodes. Growth on an empty free list
// during allocation adds one fixed-size arena and ignores this cap.
func Maxnodeincrease(size int) Option {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Minfreenodes sets the percentage of nodes that must remain free after a
// garbage collection before a resize is triggered instead.
func Minfreenodes(ratio int) Option {
	return func(c *configs) {
		c.minfreenodes = ratio
	}
}

// Cachesize sets the initial number of entries in each per-operator apply
// cache.
func Cachesize(size int) Option {
	return func(c *configs) {
		c.cachesize = size
	}
}

// Autoreorder enables a greedy sifting pass (see SiftVars) whenever a
// top-level operation ends with a garbage collection (scheduled by
// allocation pressure or by a reference count dropping to zero), instead of
// reordering only when asked. Diagrams keep their meaning and their root addresses; the
// variable order simply stops being the identity.
func Autoreorder() Option {
	return func(c *configs) {
		c.autoreorder = true
	}
}

// Cacheratio sets the apply-cache size, as a percentage of the live node
// count, that every cache grows towards at the end of each top-level
// operation (rounded up to the unique-table capacity schedule); caches never
// shrink. A ratio of 0 (the default) means caches never grow automatically.
func Cacheratio(ratio int) Option {
	return func(c *configs) {
		c.cacheratio = ratio
	}
}

// Profile is a named tuning profile as loaded from a YAML file by
// LoadProfile; it can be applied to New as an Option.
type Profile struct {
	Nodesize        int `mapstructure:"nodesize"`
	Cachesize       int `mapstructure:"cachesize"`
	Cacheratio      int `mapstructure:"cacheratio"`
	Maxnodesize     int `mapstructure:"maxnodesize"`
	Maxnodeincrease int `mapstructure:"maxnodeincrease"`
	Minfreenodes    int `mapstructure:"minfreenodes"`
}

// LoadProfile reads a named profile out of a YAML configuration file using
// viper, returning an Option that applies every field the profile sets.
// This is not a CLI: it is meant to let an embedding application pick a
// tuning profile (e.g. "large-model" vs "interactive") without recompiling.
func LoadProfile(path, name string) (Option, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("polydd: cannot read profile file: %w", err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("polydd: cannot parse profile file: %w", err)
	}
	sub := v.Sub(name)
	if sub == nil {
		return nil, fmt.Errorf("polydd: profile %q not found in %s", name, path)
	}
	var p Profile
	if err := sub.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("polydd: cannot decode profile %q: %w", name, err)
	}
	return func(c *configs) {
		if p.Nodesize > 0 {
			c.nodesize = p.Nodesize
		}
		if p.Cachesize > 0 {
			c.cachesize = p.Cachesize
		}
		if p.Cacheratio > 0 {
			c.cacheratio = p.Cacheratio
		}
		if p.Maxnodesize > 0 {
			c.maxnodesize = p.Maxnodesize
		}
		if p.Maxnodeincrease > 0 {
			c.maxnodeincrease = p.Maxnodeincrease
		}
		if p.Minfreenodes > 0 {
			c.minfreenodes = p.Minfreenodes
		}
	}, nil
}
