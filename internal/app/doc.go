// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle: load the plan and grid,
// run the named simulations, scan the boundary, print and publish results.
// It is decoupled from any specific entrypoint like a CLI or server.
package app
