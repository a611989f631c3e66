package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"go.yaml.in/yaml/v3"
)

// ParseProject reads a project configuration file. The format is chosen by
// extension: composer.json (JSON), .yaml/.yml, or .toml.
func ParseProject(path string) (*ProjectConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseProjectData(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing project %s: %w", path, err)
	}
	return cfg, nil
}

// ParseProjectData parses project configuration bytes in the given format.
func ParseProjectData(data []byte, format Format) (*ProjectConfig, error) {
	switch format {
	case FormatJSON:
		return parseProjectJSON(data)
	case FormatYAML:
		return parseProjectYAML(data)
	case FormatTOML:
		return parseProjectTOML(data)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// ParsePackage reads a package's own manifest (name, type, version, extra).
func ParsePackage(path string) (*Package, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var pkg Package
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &pkg)
	case FormatYAML:
		err = yaml.Unmarshal(data, &pkg)
	case FormatTOML:
		_, err = toml.Decode(string(data), &pkg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing package %s: %w", path, err)
	}
	if pkg.Name == "" {
		return nil, fmt.Errorf("package manifest %s missing required 'name' field", path)
	}
	return &pkg, nil
}

// lockFile mirrors the parts of composer.lock that carry packages.
type lockFile struct {
	Packages    []Package `json:"packages"`
	PackagesDev []Package `json:"packages-dev"`
}

// ParseLock reads a composer.lock file and returns its packages followed by
// its dev packages, in file order.
func ParseLock(path string) ([]Package, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var lock lockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("parsing lock file %s: %w", path, err)
	}

	pkgs := make([]Package, 0, len(lock.Packages)+len(lock.PackagesDev))
	pkgs = append(pkgs, lock.Packages...)
	pkgs = append(pkgs, lock.PackagesDev...)
	return pkgs, nil
}

func parseProjectJSON(data []byte) (*ProjectConfig, error) {
	var doc struct {
		Name  string                     `json:"name"`
		Extra map[string]json.RawMessage `json:"extra"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling JSON: %w", err)
	}

	cfg := NewProjectConfig(doc.Name)
	for key, raw := range doc.Extra {
		if key == KeyInstallerPaths {
			entries, err := orderedJSONPaths(raw)
			if err != nil {
				return nil, err
			}
			cfg.InstallerPaths = entries
			continue
		}

		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("unmarshaling extra %q: %w", key, err)
		}
		cfg.set(key, v)
	}
	return cfg, nil
}

// orderedJSONPaths walks the installer-paths object token by token so the
// declaration order of its keys survives decoding.
func orderedJSONPaths(raw json.RawMessage) ([]PathEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", KeyInstallerPaths, err)
	}
	if tok == nil {
		return nil, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%s must be an object mapping path templates to rules", KeyInstallerPaths)
	}

	var entries []PathEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading %s key: %w", KeyInstallerPaths, err)
		}
		template, _ := keyTok.(string)

		var rules interface{}
		if err := dec.Decode(&rules); err != nil {
			return nil, fmt.Errorf("reading rules for %q: %w", template, err)
		}
		entries = append(entries, PathEntry{Template: template, Rules: rules})
	}
	return entries, nil
}

func parseProjectYAML(data []byte) (*ProjectConfig, error) {
	var doc struct {
		Name  string    `yaml:"name"`
		Extra yaml.Node `yaml:"extra"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}

	cfg := NewProjectConfig(doc.Name)
	if isNullNode(&doc.Extra) {
		return cfg, nil
	}
	if doc.Extra.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("extra must be a mapping")
	}

	for i := 0; i+1 < len(doc.Extra.Content); i += 2 {
		key, value := doc.Extra.Content[i].Value, doc.Extra.Content[i+1]
		if key == KeyInstallerPaths {
			entries, err := orderedYAMLPaths(value)
			if err != nil {
				return nil, err
			}
			cfg.InstallerPaths = entries
			continue
		}

		var v interface{}
		if err := value.Decode(&v); err != nil {
			return nil, fmt.Errorf("decoding extra %q: %w", key, err)
		}
		cfg.set(key, v)
	}
	return cfg, nil
}

func orderedYAMLPaths(node *yaml.Node) ([]PathEntry, error) {
	if isNullNode(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s must be a mapping of path templates to rules", KeyInstallerPaths)
	}

	entries := make([]PathEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		template := node.Content[i].Value
		var rules interface{}
		if err := node.Content[i+1].Decode(&rules); err != nil {
			return nil, fmt.Errorf("decoding rules for %q: %w", template, err)
		}
		entries = append(entries, PathEntry{Template: template, Rules: rules})
	}
	return entries, nil
}

// isNullNode reports whether a node is absent or an explicit null.
func isNullNode(n *yaml.Node) bool {
	return n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func parseProjectTOML(data []byte) (*ProjectConfig, error) {
	var doc map[string]interface{}
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("unmarshaling TOML: %w", err)
	}

	name, _ := doc["name"].(string)
	cfg := NewProjectConfig(name)

	extra, _ := doc["extra"].(map[string]interface{})
	for key, v := range extra {
		if key == KeyInstallerPaths {
			continue
		}
		cfg.set(key, v)
	}

	raw, ok := extra[KeyInstallerPaths]
	if !ok {
		return cfg, nil
	}
	table, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s must be a table of path templates to rules", KeyInstallerPaths)
	}

	// MetaData.Keys reports keys in document order; the decoded map does not.
	seen := make(map[string]bool, len(table))
	for _, key := range md.Keys() {
		if len(key) != 3 || key[0] != "extra" || key[1] != KeyInstallerPaths {
			continue
		}
		template := key[2]
		if seen[template] {
			continue
		}
		seen[template] = true
		cfg.InstallerPaths = append(cfg.InstallerPaths, PathEntry{Template: template, Rules: table[template]})
	}

	var rest []string
	for template := range table {
		if !seen[template] {
			rest = append(rest, template)
		}
	}
	sort.Strings(rest)
	for _, template := range rest {
		cfg.InstallerPaths = append(cfg.InstallerPaths, PathEntry{Template: template, Rules: table[template]})
	}
	return cfg, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
