// Package manifest handles the two inputs of install-path resolution: the
// package being installed (name, type, version, extra) and the consuming
// project's configuration (installer-paths, installer-disable, other extras).
// Project configuration is read from composer.json, YAML, or TOML files with
// the declaration order of installer-paths preserved, and can be checked
// against an embedded JSON Schema. Lock files list many packages at once.
package manifest
