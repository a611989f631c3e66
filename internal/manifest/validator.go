package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/project.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)

	placeholderPattern = regexp.MustCompile(`\{\$([A-Za-z0-9_]*)\}`)
	pointerEscaper     = strings.NewReplacer("~", "~0", "/", "~1")
)

// ValidationResult contains the outcome of a project validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single problem found in the project file.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/extra/installer-disable")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed, or "placeholder"
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("project.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("project.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ValidateProject checks project configuration bytes against the project
// schema and reports installer-paths templates using unknown placeholders.
// The error return is for parse or schema compilation failures; problems in
// the configuration itself are returned in the ValidationResult.
func ValidateProject(data []byte, format Format) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := toJSONInstance(data, format)
	if err != nil {
		return nil, err
	}

	var issues []ValidationIssue
	if err := schema.Validate(inst); err != nil {
		validationErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		issues = append(issues, extractIssues(validationErr)...)
	}

	// Placeholder checks need the ordered entries; skip them when the shape
	// is already too broken to parse.
	if cfg, err := ParseProjectData(data, format); err == nil {
		issues = append(issues, placeholderIssues(cfg)...)
	}

	return &ValidationResult{Valid: len(issues) == 0, Issues: issues}, nil
}

// ValidateProjectFile reads a file and validates it as project configuration.
func ValidateProjectFile(path string) (*ValidationResult, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ValidateProject(data, format)
}

// UnknownPlaceholders returns the placeholder names in template that are not
// substituted during rendering.
func UnknownPlaceholders(template string) []string {
	var unknown []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if !isPlaceholder(m[1]) {
			unknown = append(unknown, m[1])
		}
	}
	return unknown
}

func isPlaceholder(name string) bool {
	for _, p := range Placeholders {
		if p == name {
			return true
		}
	}
	return false
}

func placeholderIssues(cfg *ProjectConfig) []ValidationIssue {
	var issues []ValidationIssue
	for _, entry := range cfg.InstallerPaths {
		for _, name := range UnknownPlaceholders(entry.Template) {
			issues = append(issues, ValidationIssue{
				Path:    "/extra/" + KeyInstallerPaths + "/" + pointerEscaper.Replace(entry.Template),
				Message: fmt.Sprintf("unknown placeholder {$%s} (known: %s)", name, strings.Join(Placeholders, ", ")),
				Keyword: "placeholder",
			})
		}
	}
	return issues
}

// toJSONInstance converts manifest bytes into a value the schema validator
// accepts, going through JSON so numbers decode consistently.
func toJSONInstance(data []byte, format Format) (interface{}, error) {
	var raw interface{}
	switch format {
	case FormatJSON:
		inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		return inst, nil
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	case FormatTOML:
		var doc map[string]interface{}
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
		raw = doc
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}
	return inst, nil
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf errors
// with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		msg := ""
		if ve.ErrorKind != nil {
			if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Container errors carry no property detail.
		if keyword == "oneOf" || keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
