// Package yamlconfig loads beamgrid plans written in YAML.
//
//	grid:
//	  path: input.txt
//	simulations:
//	  - name: default
//	    entry: left[0]
//	scan:
//	  top: 3
//
// YAML has no expression language, so entries are literal identifiers.
package yamlconfig

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/beamgrid/internal/config"
	"github.com/specialistvlad/beamgrid/internal/ctxlog"
)

// Extensions lists the file extensions handled by Loader.
var Extensions = []string{".yaml", ".yml"}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML plan loader.
func NewLoader() *Loader {
	return &Loader{}
}

type fileRoot struct {
	Grid        *gridDoc       `yaml:"grid"`
	Simulations []*simulateDoc `yaml:"simulations"`
	Scan        *scanDoc       `yaml:"scan"`
	Publish     *publishDoc    `yaml:"publish"`
}

type gridDoc struct {
	Path string   `yaml:"path"`
	Rows []string `yaml:"rows"`
}

type simulateDoc struct {
	Name  string `yaml:"name"`
	Entry string `yaml:"entry"`
}

type scanDoc struct {
	Disabled bool `yaml:"disabled"`
	Workers  int  `yaml:"workers"`
	Top      int  `yaml:"top"`
}

type publishDoc struct {
	URL                string `yaml:"url"`
	Namespace          string `yaml:"namespace"`
	Event              string `yaml:"event"`
	AckEvent           string `yaml:"ack_event"`
	Timeout            string `yaml:"timeout"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
}

// Load reads and decodes a single YAML plan file. Unknown keys are rejected.
func (l *Loader) Load(ctx context.Context, path string) (*config.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading YAML plan file.", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML file %s: %w", path, err)
	}
	defer f.Close()

	var root fileRoot
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	plan, err := translate(&root, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("invalid YAML file %s: %w", path, err)
	}
	plan.Sources = []string{path}

	logger.Debug("YAML plan file loaded.", "path", path, "has_grid", plan.Grid != nil, "simulations", len(plan.Simulations))
	return plan, nil
}

func translate(root *fileRoot, baseDir string) (*config.Plan, error) {
	plan := &config.Plan{}

	if root.Grid != nil {
		src := &config.GridSource{Path: root.Grid.Path, Rows: root.Grid.Rows}
		if src.Path != "" && !filepath.IsAbs(src.Path) {
			src.Path = filepath.Join(baseDir, src.Path)
		}
		plan.Grid = src
	}

	for i, sim := range root.Simulations {
		if sim == nil {
			return nil, fmt.Errorf("simulation %d is empty", i)
		}
		s := &config.Simulation{Name: sim.Name}
		if sim.Entry != "" {
			s.Entry = config.Literal(sim.Entry)
		}
		plan.Simulations = append(plan.Simulations, s)
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
