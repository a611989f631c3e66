package installer

import (
	"github.com/peter-mw/installers/internal/manifest"
	"github.com/peter-mw/installers/internal/override"
)

// Resolution describes how an install path was derived.
type Resolution struct {
	Package   manifest.Package
	Framework string
	Kind      string
	Template  string
	Source    string
	// Rule is the installer-paths rule that matched, nil for catalog paths.
	Rule    *override.Rule
	Token   string
	RelPath string
	Path    string
}

// Summary is the JSON shape of a Resolution.
type Summary struct {
	Package   string `json:"package"`
	Type      string `json:"type"`
	Version   string `json:"version,omitempty"`
	Framework string `json:"framework"`
	Kind      string `json:"kind"`
	Source    string `json:"source"`
	Template  string `json:"template"`
	Rule      string `json:"rule,omitempty"`
	Name      string `json:"name"`
	Relative  string `json:"relative"`
	Path      string `json:"path"`
}

// Summary flattens the resolution for output.
func (r *Resolution) Summary() Summary {
	s := Summary{
		Package:   r.Package.Name,
		Type:      r.Package.Type,
		Version:   r.Package.Version,
		Framework: r.Framework,
		Kind:      r.Kind,
		Source:    r.Source,
		Template:  r.Template,
		Name:      r.Token,
		Relative:  r.RelPath,
		Path:      r.Path,
	}
	if r.Rule != nil {
		s.Rule = r.Rule.String()
	}
	return s
}
