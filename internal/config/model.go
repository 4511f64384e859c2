package config

import (
	"time"
)

// Plan is the unified, format-agnostic representation of a plan file or a
// directory of plan files.
type Plan struct {
	Grid        *GridSource
	Simulations []*Simulation
	Scan        *Scan
	Publish     *Publish

	// Sources lists the files the plan was assembled from, in load order.
	Sources []string
}

// GridSource says where the grid comes from. Exactly one of Path and Rows is
// set. Loaders resolve a relative Path against the plan file's directory.
type GridSource struct {
	Path string
	Rows []string
}

// Simulation is a named single-entry simulation.
type Simulation struct {
	Name  string
	Entry EntryExpr
}

// Scan configures the boundary scan.
type Scan struct {
	Disabled bool
	Workers  int `validate:"gte=0"`
	Top      int `validate:"gte=0"`
}

// Publish configures the socket.io result publisher.
type Publish struct {
	URL                string `validate:"required,url"`
	Namespace          string
	Event              string
	AckEvent           string
	Timeout            time.Duration `validate:"gte=0"`
	InsecureSkipVerify bool
}

const (
	DefaultPublishNamespace = "/"
	DefaultPublishEvent     = "beamgrid:result"
	DefaultPublishTimeout   = 10 * time.Second
)

// WithDefaults returns a copy of p with empty optional fields filled in.
func (p Publish) WithDefaults() Publish {
	if p.Namespace == "" {
		p.Namespace = DefaultPublishNamespace
	}
	if p.Event == "" {
		p.Event = DefaultPublishEvent
	}
	if p.Timeout == 0 {
		p.Timeout = DefaultPublishTimeout
	}
	return p
}

// GridDims exposes the loaded grid's size to entry expressions.
type GridDims struct {
	Width  int
	Height int
}

// EntryExpr produces the textual entry identifier of a simulation. Formats
// that support expressions evaluate them against the loaded grid's
// dimensions, which are only known after the plan has been read.
type EntryExpr interface {
	Evaluate(dims GridDims) (string, error)
}

// Literal is an EntryExpr that ignores the grid.
type Literal string

// Evaluate implements EntryExpr.
func (l Literal) Evaluate(GridDims) (string, error) {
	return string(l), nil
}
