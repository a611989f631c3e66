package manifest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Keys read from the extra block of a package or project.
const (
	KeyInstallerName    = "installer-name"
	KeyInstallerPaths   = "installer-paths"
	KeyInstallerDisable = "installer-disable"
)

// Placeholders are the template variables substituted into install paths.
var Placeholders = []string{"name", "vendor", "type"}

// Package describes a single package awaiting an install path.
type Package struct {
	Name    string                 `yaml:"name" json:"name" toml:"name"`
	Type    string                 `yaml:"type" json:"type" toml:"type"`
	Version string                 `yaml:"version,omitempty" json:"version,omitempty" toml:"version"`
	Extra   map[string]interface{} `yaml:"extra,omitempty" json:"extra,omitempty" toml:"extra"`
}

// NewPackage returns a package with no extra metadata.
func NewPackage(name, typ, version string) Package {
	return Package{Name: name, Type: typ, Version: version}
}

// VendorName returns the part of Name before the first "/".
// Packages without a "/" have no vendor.
func (p Package) VendorName() string {
	vendor, _, ok := strings.Cut(p.Name, "/")
	if !ok {
		return ""
	}
	return vendor
}

// ProjectName returns the part of Name after the first "/", or the whole
// name when there is no vendor.
func (p Package) ProjectName() string {
	_, project, ok := strings.Cut(p.Name, "/")
	if !ok {
		return p.Name
	}
	return project
}

// InstallerName returns extra.installer-name when it is a non-empty string.
func (p Package) InstallerName() (string, bool) {
	v, ok := p.Extra[KeyInstallerName].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// PathEntry is one installer-paths declaration: a path template and the raw
// rule value (a string, a bool, or a list of them) selecting packages for it.
type PathEntry struct {
	Template string
	Rules    interface{}
}

// ProjectConfig is the consuming project's configuration snapshot.
type ProjectConfig struct {
	Name             string
	InstallerPaths   []PathEntry // declaration order
	InstallerDisable interface{} // bool, string, or list of them
	Extra            map[string]interface{}
}

// NewProjectConfig returns an empty configuration for the named project.
func NewProjectConfig(name string) *ProjectConfig {
	return &ProjectConfig{Name: name, Extra: make(map[string]interface{})}
}

// set stores a decoded extra value under its key.
func (c *ProjectConfig) set(key string, value interface{}) {
	if key == KeyInstallerDisable {
		c.InstallerDisable = value
		return
	}
	c.Extra[key] = value
}

// Format identifies the serialization of a manifest file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".lock":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported manifest format for %s (want .json, .yaml, .yml or .toml)", path)
	}
}
