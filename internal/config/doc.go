// Package config defines the format-agnostic plan model for a beamgrid run,
// along with the Loader interface concrete file formats implement.
//
// A plan names the grid to load, the entries to simulate, how to run the
// boundary scan and where to publish results. The app package consumes only
// the Plan type; the HCL and YAML loaders live in their own packages.
package config
