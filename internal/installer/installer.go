// Package installer computes where a package is installed.
//
// An Installer combines the type catalog with one project's configuration.
// For a package it checks that the type is known and its framework enabled,
// picks the project's installer-paths template or the catalog template,
// derives the {$name} token and renders the result against the base
// directory.
package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/peter-mw/installers/internal/catalog"
	"github.com/peter-mw/installers/internal/disable"
	"github.com/peter-mw/installers/internal/manifest"
	"github.com/peter-mw/installers/internal/naming"
	"github.com/peter-mw/installers/internal/override"
)

// Template sources reported in a Resolution.
const (
	SourceCatalog        = "catalog"
	SourceInstallerPaths = "installer-paths"
)

// Installer resolves install paths for one project. It is read-only after
// New and safe for concurrent use.
type Installer struct {
	catalog   *catalog.Catalog
	project   *manifest.ProjectConfig
	overrides *override.Resolver
	filter    disable.Filter
	baseDir   string
	logger    *log.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithBaseDir sets the directory relative paths are joined onto.
func WithBaseDir(dir string) Option {
	return func(i *Installer) { i.baseDir = dir }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(i *Installer) { i.logger = l }
}

// New returns an Installer for project. A nil project behaves like one with
// no extra configuration. The base directory defaults to the working
// directory.
func New(cat *catalog.Catalog, project *manifest.ProjectConfig, opts ...Option) (*Installer, error) {
	if cat == nil {
		return nil, fmt.Errorf("installer: nil catalog")
	}
	if project == nil {
		project = manifest.NewProjectConfig("")
	}

	i := &Installer{
		catalog:   cat,
		project:   project,
		overrides: override.New(project.InstallerPaths),
		filter:    disable.New(project.InstallerDisable),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = log.Default()
	}
	if i.baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determining working directory: %w", err)
		}
		i.baseDir = wd
	}

	for _, v := range i.filter.Ignored() {
		i.logger.Warn("ignoring installer-disable value", "value", v)
	}
	for _, e := range i.overrides.Entries() {
		for _, v := range e.Skipped {
			i.logger.Warn("ignoring installer-paths rule", "template", e.Template, "rule", v)
		}
	}
	i.logger.Debug("installer ready", "base", i.baseDir, "types", cat.Len(), "disable", i.filter.Describe())
	return i, nil
}

// BaseDir returns the directory relative paths are joined onto.
func (i *Installer) BaseDir() string {
	return i.baseDir
}

// Supports reports whether tag is in the catalog and its framework is not
// disabled.
func (i *Installer) Supports(tag string) bool {
	if _, ok := i.catalog.Lookup(tag); !ok {
		return false
	}
	return !i.filter.Disabled(Framework(tag))
}

// InstallPath returns the install directory for pkg.
func (i *Installer) InstallPath(pkg manifest.Package) (string, error) {
	res, err := i.Resolve(pkg)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// Resolve computes the install directory for pkg and records how it was
// derived.
func (i *Installer) Resolve(pkg manifest.Package) (*Resolution, error) {
	framework := Framework(pkg.Type)

	entry, ok := i.catalog.Lookup(pkg.Type)
	if !ok || i.filter.Disabled(framework) {
		err := &UnsupportedTypeError{Type: pkg.Type, Framework: framework, Disabled: ok}
		if !ok {
			if err.Known = i.catalog.TagsFor(framework); len(err.Known) == 0 {
				err.Known = i.catalog.Frameworks()
			}
		}
		return nil, err
	}

	res := &Resolution{
		Package:   pkg,
		Framework: entry.Framework,
		Kind:      entry.Kind,
		Template:  entry.Path,
		Source:    SourceCatalog,
		Token:     naming.Token(pkg, entry.Naming),
	}
	if m, ok := i.overrides.Resolve(pkg); ok {
		res.Template = m.Template
		res.Source = SourceInstallerPaths
		rule := m.Rule
		res.Rule = &rule
	}

	res.RelPath = Render(res.Template, res.Token, pkg.VendorName(), entry.Kind)
	res.Path = i.join(res.RelPath)

	i.logger.Debug("resolved install path",
		"package", pkg.Name,
		"type", pkg.Type,
		"source", res.Source,
		"template", res.Template,
		"name", res.Token,
		"path", res.Path,
	)
	return res, nil
}

// join anchors a rendered path at the base directory. Absolute paths are
// returned unchanged and a trailing "/" survives the join.
func (i *Installer) join(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	p := filepath.Join(i.baseDir, rel)
	if strings.HasSuffix(rel, "/") {
		p += string(filepath.Separator)
	}
	return p
}

// Render substitutes {$name}, {$vendor} and {$type} in template. Other
// placeholders are left as written.
func Render(template, name, vendor, kind string) string {
	return strings.NewReplacer(
		"{$name}", name,
		"{$vendor}", vendor,
		"{$type}", kind,
	).Replace(template)
}

// Framework returns the part of a type tag before the first "-".
func Framework(tag string) string {
	fw, _, _ := strings.Cut(tag, "-")
	return fw
}
