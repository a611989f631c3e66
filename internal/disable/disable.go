// Package disable evaluates a project's installer-disable setting.
//
// The setting may be a bool, a string, or a list of them. It is normalized
// into tokens once; a framework is disabled when any token is a blanket
// disable (true, "all", "*") or names the framework exactly. The string
// "true" is not a blanket disable.
package disable

import "fmt"

// TokenKind distinguishes blanket tokens from framework tokens.
type TokenKind int

const (
	// TokenAll disables every framework.
	TokenAll TokenKind = iota
	// TokenFramework disables one framework id.
	TokenFramework
)

// Token is one normalized installer-disable entry.
type Token struct {
	Kind      TokenKind
	Framework string
}

func (t Token) String() string {
	if t.Kind == TokenAll {
		return "all"
	}
	return t.Framework
}

// Normalize turns a raw installer-disable value into tokens. A false value
// contributes nothing. Values of any other type are returned as ignored.
func Normalize(raw interface{}) (tokens []Token, ignored []interface{}) {
	var items []interface{}
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	default:
		items = []interface{}{v}
	}

	for _, item := range items {
		switch v := item.(type) {
		case bool:
			if v {
				tokens = append(tokens, Token{Kind: TokenAll})
			}
		case string:
			switch v {
			case "all", "*":
				tokens = append(tokens, Token{Kind: TokenAll})
			default:
				tokens = append(tokens, Token{Kind: TokenFramework, Framework: v})
			}
		default:
			ignored = append(ignored, item)
		}
	}
	return tokens, ignored
}

// Filter answers whether a framework is disabled.
type Filter struct {
	all        bool
	frameworks map[string]bool
	tokens     []Token
	ignored    []interface{}
}

// New builds a Filter from a raw installer-disable value.
func New(raw interface{}) Filter {
	tokens, ignored := Normalize(raw)
	f := Filter{tokens: tokens, ignored: ignored}
	for _, t := range tokens {
		if t.Kind == TokenAll {
			f.all = true
			continue
		}
		if f.frameworks == nil {
			f.frameworks = make(map[string]bool)
		}
		f.frameworks[t.Framework] = true
	}
	return f
}

// Disabled reports whether the framework is switched off.
func (f Filter) Disabled(framework string) bool {
	return f.all || f.frameworks[framework]
}

// All reports whether every framework is disabled.
func (f Filter) All() bool {
	return f.all
}

// Tokens returns the normalized tokens.
func (f Filter) Tokens() []Token {
	return f.tokens
}

// Ignored returns raw values that were neither bools nor strings.
func (f Filter) Ignored() []interface{} {
	return f.ignored
}

// Describe summarizes the filter for log output.
func (f Filter) Describe() string {
	switch {
	case f.all:
		return "all frameworks disabled"
	case len(f.frameworks) == 0:
		return "nothing disabled"
	default:
		return fmt.Sprintf("%d framework(s) disabled", len(f.frameworks))
	}
}
