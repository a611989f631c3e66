//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/peter-mw/installers/internal/catalog"
	"github.com/peter-mw/installers/internal/installer"
	"github.com/peter-mw/installers/internal/manifest"
)

// testEnv holds an isolated project directory.
type testEnv struct {
	HomeDir    string // HOME for config lookups
	ProjectDir string // project root, used as the base directory
}

// setupTestEnv creates temp directories and points HOME at one of them so
// no user config leaks into the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	return env
}

// newInstaller loads the project manifest from the env and builds an
// installer rooted at the project directory.
func newInstaller(t *testing.T, env *testEnv, manifestName string) *installer.Installer {
	t.Helper()

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	project, err := manifest.ParseProject(filepath.Join(env.ProjectDir, manifestName))
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}
	inst, err := installer.New(cat, project,
		installer.WithBaseDir(env.ProjectDir),
		installer.WithLogger(log.New(os.Stderr)),
	)
	if err != nil {
		t.Fatalf("installer.New: %v", err)
	}
	return inst
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected directory, got file: %s", path)
	}
}
