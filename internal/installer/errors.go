package installer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedType is matched by every *UnsupportedTypeError.
var ErrUnsupportedType = errors.New("unsupported package type")

// UnsupportedTypeError reports a type tag that is not in the catalog or
// whose framework is disabled by the project.
type UnsupportedTypeError struct {
	Type      string
	Framework string
	Disabled  bool
	// Known lists the framework's tags, or every framework id when the
	// framework itself is unknown.
	Known []string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Disabled {
		return fmt.Sprintf("package type %q is not supported: framework %q is disabled by installer-disable", e.Type, e.Framework)
	}
	if len(e.Known) == 0 {
		return fmt.Sprintf("package type %q is not supported", e.Type)
	}
	if e.knownAreTags() {
		return fmt.Sprintf("package type %q is not supported; %s supports: %s", e.Type, e.Framework, strings.Join(e.Known, ", "))
	}
	return fmt.Sprintf("package type %q is not supported; known frameworks: %s", e.Type, strings.Join(e.Known, ", "))
}

// Is makes errors.Is(err, ErrUnsupportedType) true.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

func (e *UnsupportedTypeError) knownAreTags() bool {
	return strings.HasPrefix(e.Known[0], e.Framework+"-")
}
