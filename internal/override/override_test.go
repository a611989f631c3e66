package override

import (
	"testing"

	"github.com/peter-mw/installers/internal/manifest"
)

func TestParseRule(t *testing.T) {
	tests := []struct {
		raw    interface{}
		kind   RuleKind
		value  string
		wantOK bool
	}{
		{"shama/ftp", RuleExact, "shama/ftp", true},
		{"vendor:penyaskito", RuleVendor, "penyaskito", true},
		{"type:wordpress-plugin", RuleType, "wordpress-plugin", true},
		{"vendor:", RuleVendor, "", true},
		{"vendors:acme", RuleExact, "vendors:acme", true},
		{true, RuleAny, "", true},
		{false, RuleNone, "", true},
		{42, 0, "", false},
		{nil, 0, "", false},
	}

	for _, tt := range tests {
		rule, ok := ParseRule(tt.raw)
		if ok != tt.wantOK {
			t.Errorf("ParseRule(%#v) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if rule.Kind != tt.kind || rule.Value != tt.value {
			t.Errorf("ParseRule(%#v) = %+v, want {%v %q}", tt.raw, rule, tt.kind, tt.value)
		}
		if s, isString := tt.raw.(string); isString && rule.String() != s {
			t.Errorf("String() = %q, want %q", rule.String(), s)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		paths    []manifest.PathEntry
		pkg      manifest.Package
		template string
		matched  bool
	}{
		{
			name:     "exact name in list",
			paths:    []manifest.PathEntry{{Template: "my/custom/path/{$name}/", Rules: []interface{}{"shama/ftp", "foo/bar"}}},
			pkg:      manifest.NewPackage("shama/ftp", "cakephp-plugin", "1.0.0"),
			template: "my/custom/path/{$name}/",
			matched:  true,
		},
		{
			name:     "type rule",
			paths:    []manifest.PathEntry{{Template: "my/custom/path/{$name}/", Rules: []interface{}{"type:wordpress-plugin"}}},
			pkg:      manifest.NewPackage("slbmeh/my_plugin", "wordpress-plugin", "1.0.0"),
			template: "my/custom/path/{$name}/",
			matched:  true,
		},
		{
			name:     "vendor rule as bare string",
			paths:    []manifest.PathEntry{{Template: "modules/custom/{$name}/", Rules: "vendor:penyaskito"}},
			pkg:      manifest.NewPackage("penyaskito/my_module", "drupal-module", "1.0.0"),
			template: "modules/custom/{$name}/",
			matched:  true,
		},
		{
			name:     "vendor rule needs a vendor",
			paths:    []manifest.PathEntry{{Template: "x/{$name}/", Rules: []interface{}{"vendor:"}}},
			pkg:      manifest.NewPackage("vanillaPlugin", "vanilla-plugin", "1.0.0"),
			template: "",
			matched:  false,
		},
		{
			name: "first declared entry wins",
			paths: []manifest.PathEntry{
				{Template: "first/{$name}/", Rules: []interface{}{"type:drupal-module"}},
				{Template: "second/{$name}/", Rules: []interface{}{"penyaskito/my_module"}},
			},
			pkg:      manifest.NewPackage("penyaskito/my_module", "drupal-module", "1.0.0"),
			template: "first/{$name}/",
			matched:  true,
		},
		{
			name: "bool rules",
			paths: []manifest.PathEntry{
				{Template: "never/{$name}/", Rules: false},
				{Template: "always/{$name}/", Rules: true},
			},
			pkg:      manifest.NewPackage("a/b", "drupal-module", ""),
			template: "always/{$name}/",
			matched:  true,
		},
		{
			name:     "unparseable rule skipped",
			paths:    []manifest.PathEntry{{Template: "x/{$name}/", Rules: []interface{}{42, "a/b"}}},
			pkg:      manifest.NewPackage("a/b", "drupal-module", ""),
			template: "x/{$name}/",
			matched:  true,
		},
		{
			name:     "no match",
			paths:    []manifest.PathEntry{{Template: "x/{$name}/", Rules: []string{"other/pkg", "vendor:other"}}},
			pkg:      manifest.NewPackage("a/b", "drupal-module", ""),
			template: "",
			matched:  false,
		},
		{
			name:     "no entries",
			paths:    nil,
			pkg:      manifest.NewPackage("a/b", "drupal-module", ""),
			template: "",
			matched:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := New(tt.paths).Resolve(tt.pkg)
			if ok != tt.matched {
				t.Fatalf("Resolve ok = %v, want %v", ok, tt.matched)
			}
			if m.Template != tt.template {
				t.Errorf("Template = %q, want %q", m.Template, tt.template)
			}
		})
	}
}

func TestNew_RecordsSkipped(t *testing.T) {
	r := New([]manifest.PathEntry{{Template: "x/", Rules: []interface{}{"a/b", 3.5, nil}}})
	e := r.Entries()[0]
	if len(e.Rules) != 1 || len(e.Skipped) != 2 {
		t.Errorf("Rules = %v, Skipped = %v", e.Rules, e.Skipped)
	}
}

func TestResolve_NilResolver(t *testing.T) {
	var r *Resolver
	if _, ok := r.Resolve(manifest.NewPackage("a/b", "drupal-module", "")); ok {
		t.Error("nil resolver matched")
	}
}
