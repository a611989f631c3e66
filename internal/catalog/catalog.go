package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/peter-mw/installers/internal/naming"
)

//go:embed types.yaml
var defaultCatalog []byte

//go:embed schema/catalog.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)

	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Entry is one supported type tag.
type Entry struct {
	Framework string
	Kind      string
	Path      string
	Naming    []naming.Step
}

// Tag returns the "<framework>-<kind>" type tag.
func (e Entry) Tag() string {
	return e.Framework + "-" + e.Kind
}

// Catalog maps type tags to install layouts. Lookups are exact: a tag is
// supported only if it is listed.
type Catalog struct {
	entries map[string]Entry
}

type catalogDoc struct {
	Frameworks []frameworkDoc `yaml:"frameworks"`
}

type frameworkDoc struct {
	ID     string             `yaml:"id"`
	Naming []string           `yaml:"naming"`
	Types  map[string]typeDoc `yaml:"types"`
}

// typeDoc accepts either a bare template string or {path, naming}.
type typeDoc struct {
	Path      string
	Naming    []string
	hasNaming bool
}

func (t *typeDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&t.Path)
	}
	var full struct {
		Path   string   `yaml:"path"`
		Naming []string `yaml:"naming"`
	}
	if err := node.Decode(&full); err != nil {
		return err
	}
	t.Path, t.Naming, t.hasNaming = full.Path, full.Naming, full.Naming != nil
	return nil
}

// Default returns the embedded catalog. It is parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(defaultCatalog)
		if defaultErr != nil {
			defaultErr = fmt.Errorf("embedded catalog: %w", defaultErr)
		}
	})
	return defaultCat, defaultErr
}

// ParseFile reads a catalog from a YAML file.
func ParseFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse validates YAML catalog data against the catalog schema and builds
// the lookup table. A tag declared twice is an error.
func Parse(data []byte) (*Catalog, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	cat := &Catalog{entries: make(map[string]Entry)}
	for _, fw := range doc.Frameworks {
		fwSteps, err := naming.ParseSteps(fw.Naming)
		if err != nil {
			return nil, fmt.Errorf("framework %s: %w", fw.ID, err)
		}
		for kind, td := range fw.Types {
			steps := fwSteps
			if td.hasNaming {
				if steps, err = naming.ParseSteps(td.Naming); err != nil {
					return nil, fmt.Errorf("type %s-%s: %w", fw.ID, kind, err)
				}
			}
			entry := Entry{Framework: fw.ID, Kind: kind, Path: td.Path, Naming: steps}
			tag := entry.Tag()
			if _, dup := cat.entries[tag]; dup {
				return nil, fmt.Errorf("type %s declared more than once", tag)
			}
			cat.entries[tag] = entry
		}
	}
	return cat, nil
}

// Lookup returns the entry for an exact type tag.
func (c *Catalog) Lookup(tag string) (Entry, bool) {
	e, ok := c.entries[tag]
	return e, ok
}

// Len returns the number of supported tags.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Tags returns every supported tag, sorted.
func (c *Catalog) Tags() []string {
	tags := make([]string, 0, len(c.entries))
	for tag := range c.entries {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// TagsFor returns the sorted tags of one framework.
func (c *Catalog) TagsFor(framework string) []string {
	var tags []string
	for tag, e := range c.entries {
		if e.Framework == framework {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// Frameworks returns the sorted framework ids.
func (c *Catalog) Frameworks() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, e := range c.entries {
		if !seen[e.Framework] {
			seen[e.Framework] = true
			ids = append(ids, e.Framework)
		}
	}
	sort.Strings(ids)
	return ids
}

// Merge returns a new catalog with overlay's entries added, replacing any
// entry with the same tag. Neither input is modified.
func (c *Catalog) Merge(overlay *Catalog) *Catalog {
	merged := &Catalog{entries: make(map[string]Entry, len(c.entries))}
	for tag, e := range c.entries {
		merged.entries[tag] = e
	}
	if overlay != nil {
		for tag, e := range overlay.entries {
			merged.entries[tag] = e
		}
	}
	return merged
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("catalog.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("catalog.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validate checks catalog YAML against the schema, going through JSON so the
// validator sees plain maps and slices.
func validate(data []byte) error {
	schema, err := getSchema()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("unexpected validation error type: %w", err)
	}
	var msgs []string
	collect(ve, &msgs)
	if len(msgs) == 0 {
		msgs = append(msgs, ve.Error())
	}
	return fmt.Errorf("invalid catalog: %s", strings.Join(msgs, "; "))
}

func collect(ve *jsonschema.ValidationError, msgs *[]string) {
	if len(ve.Causes) == 0 {
		if ve.ErrorKind == nil {
			return
		}
		*msgs = append(*msgs, "/"+strings.Join(ve.InstanceLocation, "/")+": "+ve.ErrorKind.LocalizedString(printer))
		return
	}
	for _, cause := range ve.Causes {
		collect(cause, msgs)
	}
}
