// Package override matches packages against a project's installer-paths.
//
// Each installer-paths entry pairs a path template with one or more rules.
// Entries are checked in declaration order and the first entry with a
// matching rule wins.
package override

import (
	"strings"

	"github.com/peter-mw/installers/internal/manifest"
)

// RuleKind identifies what a rule compares against.
type RuleKind int

const (
	// RuleExact matches the full package name.
	RuleExact RuleKind = iota
	// RuleVendor matches "vendor:<vendor>".
	RuleVendor
	// RuleType matches "type:<type tag>".
	RuleType
	// RuleAny is a bare true and matches every package.
	RuleAny
	// RuleNone is a bare false and matches nothing.
	RuleNone
)

const (
	vendorPrefix = "vendor:"
	typePrefix   = "type:"
)

func (k RuleKind) String() string {
	switch k {
	case RuleExact:
		return "name"
	case RuleVendor:
		return "vendor"
	case RuleType:
		return "type"
	case RuleAny:
		return "any"
	case RuleNone:
		return "none"
	default:
		return "unknown"
	}
}

// Rule is one parsed selector.
type Rule struct {
	Kind  RuleKind
	Value string
}

// String returns the rule as it would be written in installer-paths.
func (r Rule) String() string {
	switch r.Kind {
	case RuleVendor:
		return vendorPrefix + r.Value
	case RuleType:
		return typePrefix + r.Value
	case RuleAny:
		return "true"
	case RuleNone:
		return "false"
	default:
		return r.Value
	}
}

// ParseRule interprets one raw rule value. Strings without a known prefix
// are exact package names. Values that are neither strings nor bools are
// reported as not ok and never match.
func ParseRule(raw interface{}) (Rule, bool) {
	switch v := raw.(type) {
	case bool:
		if v {
			return Rule{Kind: RuleAny}, true
		}
		return Rule{Kind: RuleNone}, true
	case string:
		if rest, ok := strings.CutPrefix(v, vendorPrefix); ok {
			return Rule{Kind: RuleVendor, Value: rest}, true
		}
		if rest, ok := strings.CutPrefix(v, typePrefix); ok {
			return Rule{Kind: RuleType, Value: rest}, true
		}
		return Rule{Kind: RuleExact, Value: v}, true
	default:
		return Rule{}, false
	}
}

// Matches reports whether the rule selects pkg.
func (r Rule) Matches(pkg manifest.Package) bool {
	switch r.Kind {
	case RuleExact:
		return r.Value != "" && r.Value == pkg.Name
	case RuleVendor:
		return r.Value != "" && r.Value == pkg.VendorName()
	case RuleType:
		return r.Value != "" && r.Value == pkg.Type
	case RuleAny:
		return true
	default:
		return false
	}
}

// Entry is an installer-paths template with its parsed rules.
type Entry struct {
	Template string
	Rules    []Rule
	// Skipped holds raw rule values that could not be parsed.
	Skipped []interface{}
}

// Match is the outcome of a successful Resolve.
type Match struct {
	Template string
	Rule     Rule
}

// Resolver holds a project's installer-paths in declaration order.
type Resolver struct {
	entries []Entry
}

// New parses installer-paths entries. A bare string or bool rule value is
// treated as a one-element list.
func New(paths []manifest.PathEntry) *Resolver {
	r := &Resolver{entries: make([]Entry, 0, len(paths))}
	for _, p := range paths {
		e := Entry{Template: p.Template}
		for _, raw := range asList(p.Rules) {
			if rule, ok := ParseRule(raw); ok {
				e.Rules = append(e.Rules, rule)
			} else {
				e.Skipped = append(e.Skipped, raw)
			}
		}
		r.entries = append(r.entries, e)
	}
	return r
}

// Entries returns the parsed entries in declaration order.
func (r *Resolver) Entries() []Entry {
	return r.entries
}

// Resolve returns the template of the first entry with a rule matching pkg.
func (r *Resolver) Resolve(pkg manifest.Package) (Match, bool) {
	if r == nil {
		return Match{}, false
	}
	for _, e := range r.entries {
		for _, rule := range e.Rules {
			if rule.Matches(pkg) {
				return Match{Template: e.Template, Rule: rule}, true
			}
		}
	}
	return Match{}, false
}

func asList(raw interface{}) []interface{} {
	switch v := raw.(type) {
	case nil:
		return nil
	case []interface{}:
		return v
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return []interface{}{v}
	}
}
