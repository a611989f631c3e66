// Package cli defines the Cobra command tree for the installers CLI. Each file
// in this package builds one top-level command (path, supports, types, plan,
// validate, config, version). Command implementations delegate to internal
// packages for resolution logic and only handle flag parsing and output
// formatting.
//
// All commands accept --verbose (-v) for debug logging. The logger travels
// through the command's context.
package cli
