package naming

import (
	"testing"

	"github.com/peter-mw/installers/internal/manifest"
)

func mustSteps(t *testing.T, specs ...string) []Step {
	t.Helper()
	steps, err := ParseSteps(specs)
	if err != nil {
		t.Fatalf("ParseSteps(%v) error: %v", specs, err)
	}
	return steps
}

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"my_test-package", "MyTestPackage"},
		{"ftp", "Ftp"},
		{"MyPackage", "MyPackage"},
		{"my_package", "MyPackage"},
		{"visit-summary", "VisitSummary"},
		{"Hurad2013", "Hurad2013"},
		{"--a__b--", "AB"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToCamelCase(tt.input); got != tt.expected {
				t.Errorf("ToCamelCase(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"MyTestPackage", "my_test_package"},
		{"myTestPackage", "my_test_package"},
		{"XMLParser", "xml_parser"},
		{"my-package", "my_package"},
		{"already_snake", "already_snake"},
		{"Plugin2Go", "plugin2_go"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToSnakeCase(tt.input); got != tt.expected {
				t.Errorf("ToSnakeCase(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseStep(t *testing.T) {
	tests := []struct {
		input    string
		op      Op
		wantErr bool
	}{
		{"camel", OpCamel, false},
		{" dash-camel ", OpDashCamel, false},
		{"trim-prefix:cockpit-", OpTrimPrefix, false},
		{"trim-suffix:-extension", OpTrimSuffix, false},
		{"alias:silverstripe/framework@<3.0=sapphire", OpAlias, false},
		{"trim-prefix", "", true},
		{"camel:extra", "", true},
		{"alias:silverstripe/framework=sapphire", "", true},
		{"alias:silverstripe/framework@not-a-range=sapphire", "", true},
		{"alias:silverstripe/framework@<3.0", "", true},
		{"shout", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			step, err := ParseStep(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStep(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if step.Op != tt.op {
				t.Errorf("ParseStep(%q).Op = %q, want %q", tt.input, step.Op, tt.op)
			}
		})
	}
}

func TestStepString(t *testing.T) {
	for _, input := range []string{"camel", "trim-suffix:-plugin", "alias:silverstripe/framework@<3.0=sapphire"} {
		step, err := ParseStep(input)
		if err != nil {
			t.Fatalf("ParseStep(%q) error: %v", input, err)
		}
		if got := step.String(); got != input {
			t.Errorf("String() = %q, want %q", got, input)
		}
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		version string
		steps   []string
		want    string
	}{
		{"identity", "shama/my_module", "", nil, "my_module"},
		{"no vendor", "vanillaPlugin", "", []string{"identity"}, "vanillaPlugin"},
		{"strip prefix then upper first", "piotr-cz/cockpit-my_module", "", []string{"trim-prefix:cockpit-", "upper-first"}, "My_module"},
		{"strip suffix then dash camel", "author/APC-extension", "", []string{"trim-suffix:-extension", "dash-camel"}, "APC"},
		{"dash camel keeps underscores", "author/syntax-highlight_GeSHi", "", []string{"dash-camel"}, "SyntaxHighlight_GeSHi"},
		{"strip with nothing to strip", "author/upload-wizard", "", []string{"trim-suffix:-extension", "dash-camel"}, "UploadWizard"},
		{"module suffix", "author/my-thing-module", "", []string{"trim-suffix:-module", "dash-camel"}, "MyThing"},
		{"several prefixes", "vendor/module-foo", "", []string{"trim-prefix:pxcms-", "trim-prefix:module-", "camel"}, "Foo"},
		{"underscore lower", "test/Replace-Dash", "", []string{"underscore", "lower"}, "replace_dash"},
		{"vendor join", "shama/my-backend-plugin", "", []string{"vendor-join", "camel"}, "ShamaMyBackendPlugin"},
		{"vendor join without vendor", "my-plugin", "", []string{"vendor-join", "camel"}, "MyPlugin"},
		{"bare name strip", "plugin-hello-world", "", []string{"trim-prefix:plugin-", "camel"}, "HelloWorld"},
		{"snake", "shama/MyModule", "", []string{"snake"}, "my_module"},
		{"alias below", "silverstripe/framework", "2.4.0", []string{"alias:silverstripe/framework@<3.0=sapphire"}, "sapphire"},
		{"alias with v prefix", "silverstripe/framework", "v2.4.1", []string{"alias:silverstripe/framework@<3.0=sapphire"}, "sapphire"},
		{"alias not below", "silverstripe/framework", "3.0.0", []string{"alias:silverstripe/framework@<3.0=sapphire"}, "framework"},
		{"alias prerelease", "silverstripe/framework", "3.0.0-rc1", []string{"alias:silverstripe/framework@<3.0=sapphire"}, "framework"},
		{"alias branch", "silverstripe/framework", "my/branch", []string{"alias:silverstripe/framework@<3.0=sapphire"}, "framework"},
		{"alias other package", "silverstripe/cms", "2.4.0", []string{"alias:silverstripe/framework@<3.0=sapphire"}, "cms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := manifest.NewPackage(tt.pkg, "any-type", tt.version)
			if got := Apply(pkg, mustSteps(t, tt.steps...)); got != tt.want {
				t.Errorf("Apply(%q, %v) = %q, want %q", tt.pkg, tt.steps, got, tt.want)
			}
		})
	}
}

func TestToken_InstallerNameWins(t *testing.T) {
	steps := mustSteps(t, "camel")

	pkg := manifest.NewPackage("shama/cakephp-ftp-plugin", "cakephp-plugin", "1.0.0")
	if got := Token(pkg, steps); got != "CakephpFtpPlugin" {
		t.Errorf("Token without installer-name = %q, want %q", got, "CakephpFtpPlugin")
	}

	pkg.Extra = map[string]interface{}{manifest.KeyInstallerName: "FTP"}
	if got := Token(pkg, steps); got != "FTP" {
		t.Errorf("Token with installer-name = %q, want %q", got, "FTP")
	}

	pkg.Extra = map[string]interface{}{manifest.KeyInstallerName: ""}
	if got := Token(pkg, steps); got != "CakephpFtpPlugin" {
		t.Errorf("Token with empty installer-name = %q, want %q", got, "CakephpFtpPlugin")
	}
}
