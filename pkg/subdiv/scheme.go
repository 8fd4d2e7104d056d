// Package subdiv refines triangle meshes with the Loop, Butterfly,
// √3-Kobbelt and Catmull-Clark subdivision schemes.
package subdiv

import (
	"errors"
	"fmt"
	"strings"
)

// Scheme selects a subdivision scheme.
type Scheme int

const (
	Loop Scheme = iota
	Butterfly
	Kobbelt
	CatmullClark
)

var (
	ErrUnknownScheme  = errors.New("unknown subdivision scheme")
	ErrNegativeLevels = errors.New("subdivision levels must not be negative")
)

var schemeNames = [...]string{
	Loop:         "loop",
	Butterfly:    "butterfly",
	Kobbelt:      "kobbelt",
	CatmullClark: "catmull-clark",
}

// Schemes returns every supported scheme in declaration order.
func Schemes() []Scheme {
	return []Scheme{Loop, Butterfly, Kobbelt, CatmullClark}
}

func (s Scheme) String() string {
	if s < 0 || int(s) >= len(schemeNames) {
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
	return schemeNames[s]
}

// ParseScheme parses a scheme name. Matching ignores case, and accepts
// "sqrt3" for Kobbelt and "catmullclark"/"cc" for Catmull-Clark.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "loop":
		return Loop, nil
	case "butterfly":
		return Butterfly, nil
	case "kobbelt", "sqrt3", "√3":
		return Kobbelt, nil
	case "catmull-clark", "catmullclark", "cc":
		return CatmullClark, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Scheme) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(schemeNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, int(s))
	}
	return []byte(schemeNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scheme) UnmarshalText(text []byte) error {
	parsed, err := ParseScheme(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
