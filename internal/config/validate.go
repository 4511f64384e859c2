package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var planValidate = validator.New()

// Merge folds other into p. Simulations are appended; grid, scan and
// publish blocks may each be defined only once across all files.
func (p *Plan) Merge(other *Plan) error {
	if other.Grid != nil {
		if p.Grid != nil {
			return errors.New("grid block defined more than once")
		}
		p.Grid = other.Grid
	}
	if other.Scan != nil {
		if p.Scan != nil {
			return errors.New("scan block defined more than once")
		}
		p.Scan = other.Scan
	}
	if other.Publish != nil {
		if p.Publish != nil {
			return errors.New("publish block defined more than once")
		}
		p.Publish = other.Publish
	}
	p.Simulations = append(p.Simulations, other.Simulations...)
	p.Sources = append(p.Sources, other.Sources...)
	return nil
}

// Validate checks the plan for structural errors that do not need the grid.
func (p *Plan) Validate() error {
	if p.Grid != nil {
		hasPath, hasRows := p.Grid.Path != "", len(p.Grid.Rows) > 0
		if hasPath == hasRows {
			return errors.New("invalid plan: grid block needs exactly one of path or rows")
		}
	}

	names := make(map[string]struct{}, len(p.Simulations))
	for i, sim := range p.Simulations {
		if sim.Name == "" {
			return fmt.Errorf("invalid plan: simulation %d has no name", i)
		}
		if _, dup := names[sim.Name]; dup {
			return fmt.Errorf("invalid plan: simulation %q defined more than once", sim.Name)
		}
		names[sim.Name] = struct{}{}
		if sim.Entry == nil {
			return fmt.Errorf("invalid plan: simulation %q has no entry", sim.Name)
		}
	}

	if p.Scan != nil {
		if err := planValidate.Struct(p.Scan); err != nil {
			return fmt.Errorf("invalid plan: scan: %w", err)
		}
	}
	if p.Publish != nil {
		if err := planValidate.Struct(p.Publish); err != nil {
			return fmt.Errorf("invalid plan: publish: %w", err)
		}
	}
	return nil
}
