package config

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/specialistvlad/beamgrid/internal/ctxlog"
	"github.com/specialistvlad/beamgrid/internal/fsutil"
)

// Loader is the interface for a format-specific plan loader.
type Loader interface {
	// Load reads a single plan file and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Plan, error)
}

// Loaders maps a file extension (including the dot) to the Loader for it.
type Loaders map[string]Loader

// Extensions returns the registered extensions in sorted order.
func (ls Loaders) Extensions() []string {
	exts := make([]string, 0, len(ls))
	for ext := range ls {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Load reads the plan at path. A directory is searched recursively and
// every plan file in it is merged, in lexical path order.
func (ls Loaders) Load(ctx context.Context, path string) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Plan loader started.", "path", path, "extensions", ls.Extensions())

	files, err := fsutil.FindFilesByExtension(path, ls.Extensions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to find plan files in %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no plan files (%s) found in %s", strings.Join(ls.Extensions(), ", "), path)
	}
	logger.Debug("Discovered plan files.", "count", len(files))

	plan := &Plan{}
	for _, file := range files {
		loader := ls[strings.ToLower(filepath.Ext(file))]
		part, err := loader.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		if err := plan.Merge(part); err != nil {
			return nil, fmt.Errorf("failed to merge plan file %s: %w", file, err)
		}
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Plan loading complete.", "files", len(plan.Sources), "simulations", len(plan.Simulations))
	return plan, nil
}
