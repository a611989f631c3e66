package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/peter-mw/installers/internal/catalog"
	"github.com/peter-mw/installers/internal/config"
	"github.com/peter-mw/installers/internal/installer"
	"github.com/peter-mw/installers/internal/manifest"
)

// resolveBaseDir returns the absolute base directory: --base-dir, then the
// base_dir setting, then the working directory.
func (o *globalOptions) resolveBaseDir() (string, error) {
	dir := o.baseDir
	if dir == "" {
		dir = config.Get(config.KeyBaseDir)
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determining working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory %s: %w", dir, err)
	}
	return abs, nil
}

// projectPath returns the project manifest path and whether it was asked
// for explicitly. Relative paths are taken from the base directory.
func (o *globalOptions) projectPath(base string) (string, bool) {
	path, explicit := o.project, o.project != ""
	if !explicit {
		path = config.Get(config.KeyProjectFile)
	}
	if path == "" {
		path = "composer.json"
	}
	if !filepath.IsAbs(path) && !explicit {
		path = filepath.Join(base, path)
	}
	return path, explicit
}

// loadCatalog returns the embedded catalog with the optional overlay file
// from --catalog or the catalog_file setting merged on top.
func (o *globalOptions) loadCatalog(logger *log.Logger) (*catalog.Catalog, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	path := o.catalogFile
	if path == "" {
		path = config.Get(config.KeyCatalogFile)
	}
	if path == "" {
		return cat, nil
	}
	overlay, err := catalog.ParseFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("merged catalog overlay", "file", path, "types", overlay.Len())
	return cat.Merge(overlay), nil
}

// loadProject reads the project manifest. A missing default manifest yields
// an empty configuration; a missing explicit one is an error.
func (o *globalOptions) loadProject(base string, logger *log.Logger) (*manifest.ProjectConfig, error) {
	path, explicit := o.projectPath(base)
	cfg, err := manifest.ParseProject(path)
	if err == nil {
		logger.Debug("loaded project", "file", path, "installer-paths", len(cfg.InstallerPaths))
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		logger.Debug("no project manifest, using defaults", "file", path)
		return manifest.NewProjectConfig(""), nil
	}
	return nil, err
}

// buildInstaller wires catalog, project and base directory together.
func (o *globalOptions) buildInstaller(logger *log.Logger) (*installer.Installer, error) {
	base, err := o.resolveBaseDir()
	if err != nil {
		return nil, err
	}
	cat, err := o.loadCatalog(logger)
	if err != nil {
		return nil, err
	}
	project, err := o.loadProject(base, logger)
	if err != nil {
		return nil, err
	}
	return installer.New(cat, project, installer.WithBaseDir(base), installer.WithLogger(logger))
}
