// Package naming turns a package's project name into the {$name} token of an
// install path. Each framework declares a short list of steps (strip an
// affix, change case, join the vendor, alias a legacy name) that run in order;
// a package's own installer-name extra overrides whatever they produce.
package naming

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"

	"github.com/peter-mw/installers/internal/manifest"
)

// Op names a single transformation.
type Op string

const (
	OpIdentity   Op = "identity"
	OpTrimPrefix Op = "trim-prefix"
	OpTrimSuffix Op = "trim-suffix"
	OpCamel      Op = "camel"
	OpDashCamel  Op = "dash-camel"
	OpSnake      Op = "snake"
	OpUpperFirst Op = "upper-first"
	OpLower      Op = "lower"
	OpUnderscore Op = "underscore"
	OpVendorJoin Op = "vendor-join"
	OpAlias      Op = "alias"
)

// Step is one parsed naming step.
type Step struct {
	Op  Op
	Arg string

	// alias steps only
	pkg        string
	constraint *semver.Constraints
	alias      string
}

// ParseStep parses "op" or "op:arg".
func ParseStep(s string) (Step, error) {
	op, arg, hasArg := strings.Cut(strings.TrimSpace(s), ":")
	step := Step{Op: Op(op), Arg: arg}

	switch step.Op {
	case OpIdentity, OpCamel, OpDashCamel, OpSnake, OpUpperFirst, OpLower, OpUnderscore, OpVendorJoin:
		if hasArg {
			return Step{}, fmt.Errorf("naming step %q takes no argument", op)
		}
	case OpTrimPrefix, OpTrimSuffix:
		if arg == "" {
			return Step{}, fmt.Errorf("naming step %q needs an affix, e.g. %s:-plugin", op, op)
		}
	case OpAlias:
		if err := step.parseAlias(arg); err != nil {
			return Step{}, fmt.Errorf("naming step %q: %w", s, err)
		}
	default:
		return Step{}, fmt.Errorf("unknown naming step %q", op)
	}
	return step, nil
}

// ParseSteps parses a list of step strings.
func ParseSteps(specs []string) ([]Step, error) {
	steps := make([]Step, 0, len(specs))
	for _, s := range specs {
		step, err := ParseStep(s)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// parseAlias reads "<package>@<constraint>=<name>".
func (s *Step) parseAlias(arg string) error {
	target, alias, ok := strings.Cut(arg, "=")
	if !ok || alias == "" {
		return fmt.Errorf("want <package>@<constraint>=<name>")
	}
	pkg, rng, ok := strings.Cut(target, "@")
	if !ok || pkg == "" || rng == "" {
		return fmt.Errorf("want <package>@<constraint>=<name>")
	}
	c, err := semver.NewConstraint(rng)
	if err != nil {
		return fmt.Errorf("parsing constraint %q: %w", rng, err)
	}
	s.pkg, s.constraint, s.alias = pkg, c, alias
	return nil
}

// String returns the step in its parseable form.
func (s Step) String() string {
	if s.Arg == "" {
		return string(s.Op)
	}
	return string(s.Op) + ":" + s.Arg
}

// Apply runs steps over the package's project name.
func Apply(pkg manifest.Package, steps []Step) string {
	name := pkg.ProjectName()
	for _, s := range steps {
		name = s.apply(name, pkg)
	}
	return name
}

// Token returns the {$name} substitution for pkg. A non-empty
// extra.installer-name always wins over the framework's steps.
func Token(pkg manifest.Package, steps []Step) string {
	if name, ok := pkg.InstallerName(); ok {
		return name
	}
	return Apply(pkg, steps)
}

func (s Step) apply(name string, pkg manifest.Package) string {
	switch s.Op {
	case OpTrimPrefix:
		return strings.TrimPrefix(name, s.Arg)
	case OpTrimSuffix:
		return strings.TrimSuffix(name, s.Arg)
	case OpCamel:
		return ToCamelCase(name)
	case OpDashCamel:
		return joinCapitalized(name, func(r rune) bool { return r == '-' })
	case OpSnake:
		return ToSnakeCase(name)
	case OpUpperFirst:
		return upperFirst(name)
	case OpLower:
		return strings.ToLower(name)
	case OpUnderscore:
		return strings.ReplaceAll(name, "-", "_")
	case OpVendorJoin:
		if vendor := pkg.VendorName(); vendor != "" {
			return vendor + "-" + name
		}
		return name
	case OpAlias:
		if pkg.Name == s.pkg && s.matchesVersion(pkg.Version) {
			return s.alias
		}
		return name
	default:
		return name
	}
}

// matchesVersion reports whether version satisfies the alias constraint.
// Branch names and other non-semver versions never match.
func (s Step) matchesVersion(version string) bool {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return false
	}
	return s.constraint.Check(v)
}

// ToCamelCase drops "-" and "_" separators and upper-cases the first rune of
// every segment: "my_test-package" becomes "MyTestPackage". The rest of each
// segment keeps its case.
func ToCamelCase(s string) string {
	return joinCapitalized(s, isSeparator)
}

// ToSnakeCase splits camel humps and separators and joins the lower-cased
// tokens with "_": "MyTestPackage" becomes "my_test_package".
func ToSnakeCase(s string) string {
	tokens := tokenize(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}
	return strings.Join(tokens, "_")
}

func joinCapitalized(s string, sep func(rune) bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, part := range strings.FieldsFunc(s, sep) {
		b.WriteString(upperFirst(part))
	}
	return b.String()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// isSeparator returns true if the rune separates name segments.
func isSeparator(r rune) bool {
	return r == '_' || r == '-'
}

// tokenize splits a CamelCase or separated identifier into tokens.
//   - "MyTestPackage" -> ["My", "Test", "Package"]
//   - "my-test_package" -> ["my", "test", "package"]
//   - "XMLParser" -> ["XML", "Parser"]
func tokenize(s string) []string {
	var tokens []string
	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			continue
		}
		if i > 0 && startsToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// startsToken reports whether a new token starts at position i.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}
	// lower -> Upper: "myTest" splits before 'T'
	if !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}
	// end of acronym: "XMLParser" splits before 'P'
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
