// Package hclconfig loads beamgrid plans written in HCL.
//
//	grid {
//	  path = "input.txt"
//	}
//
//	simulate "last_row" {
//	  entry = "right[${grid.height - 1}]"
//	}
//
// Simulation entries are kept as unevaluated expressions until the grid is
// loaded; they may refer to grid.width and grid.height and call floor, min
// and max.
package hclconfig

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/beamgrid/internal/config"
	"github.com/specialistvlad/beamgrid/internal/ctxlog"
)

// Extension is the file extension handled by Loader.
const Extension = ".hcl"

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL plan loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes every top-level block a plan file may contain.
type fileRoot struct {
	Grid        *gridBlock       `hcl:"grid,block"`
	Simulations []*simulateBlock `hcl:"simulate,block"`
	Scan        *scanBlock       `hcl:"scan,block"`
	Publish     *publishBlock    `hcl:"publish,block"`
}

type gridBlock struct {
	Path string   `hcl:"path,optional"`
	Rows []string `hcl:"rows,optional"`
}

type simulateBlock struct {
	Name  string         `hcl:"name,label"`
	Entry hcl.Expression `hcl:"entry"`
}

type scanBlock struct {
	Disabled bool `hcl:"disabled,optional"`
	Workers  int  `hcl:"workers,optional"`
	Top      int  `hcl:"top,optional"`
}

type publishBlock struct {
	URL                string `hcl:"url"`
	Namespace          string `hcl:"namespace,optional"`
	Event              string `hcl:"event,optional"`
	AckEvent           string `hcl:"ack_event,optional"`
	Timeout            string `hcl:"timeout,optional"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
}

// Load parses and decodes a single HCL plan file.
func (l *Loader) Load(ctx context.Context, path string) (*config.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading HCL plan file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	plan, err := l.translate(&root, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("invalid HCL file %s: %w", path, err)
	}
	plan.Sources = []string{path}

	logger.Debug("HCL plan file loaded.", "path", path, "has_grid", plan.Grid != nil, "simulations", len(plan.Simulations))
	return plan, nil
}

// translate converts decoded blocks into the format-agnostic plan.
func (l *Loader) translate(root *fileRoot, baseDir string) (*config.Plan, error) {
	plan := &config.Plan{}

	if root.Grid != nil {
		src := &config.GridSource{Rows: root.Grid.Rows}
		if root.Grid.Path != "" {
			src.Path = root.Grid.Path
			if !filepath.IsAbs(src.Path) {
				src.Path = filepath.Join(baseDir, src.Path)
			}
		}
		plan.Grid = src
	}

	for _, sim := range root.Simulations {
		if sim.Entry == nil {
			return nil, fmt.Errorf("simulate %q: entry is required", sim.Name)
		}
		if isNullExpr(sim.Entry) {
			return nil, fmt.Errorf("simulate %q at %s: entry is required", sim.Name, sim.Entry.Range())
		}
		plan.Simulations = append(plan.Simulations, &config.Simulation{
			Name:  sim.Name,
			Entry: &entryExpr{expr: sim.Entry},
		})
	}

	if root.Scan != nil {
		plan.Scan = &config.Scan{
			Disabled: root.Scan.Disabled,
			Workers:  root.Scan.Workers,
			Top:      root.Scan.Top,
		}
	}

	if root.Publish != nil {
		pub := &config.Publish{
			URL:                root.Publish.URL,
			Namespace:          root.Publish.Namespace,
			Event:              root.Publish.Event,
			AckEvent:           root.Publish.AckEvent,
			InsecureSkipVerify: root.Publish.InsecureSkipVerify,
		}
		if root.Publish.Timeout != "" {
			timeout, err := time.ParseDuration(root.Publish.Timeout)
			if err != nil {
				return nil, fmt.Errorf("publish timeout: %w", err)
			}
			pub.Timeout = timeout
		}
		plan.Publish = pub
	}

	return plan, nil
}

// isNullExpr reports whether expr is statically null. gohcl hands back a null
// expression, rather than a diagnostic, for a missing hcl.Expression
// attribute. Expressions that need variables or functions are not static and
// report false.
func isNullExpr(expr hcl.Expression) bool {
	val, diags := expr.Value(nil)
	return !diags.HasErrors() && val.IsNull()
}
