package wallpaper

import (
	"strings"

	"github.com/matzehuels/wallfeed/pkg/errors"
)

// Type identifies an upstream provider variant.
type Type string

// Provider type tags accepted in the "type" query parameter.
const (
	TypeOfficial   Type = "official"
	TypeThirdParty Type = "thirdparty"
	TypeUpx8       Type = "upx8"
	TypeImgrunRand Type = "imgrun-rand"
)

// AllTypes lists every known provider type in rotation order.
var AllTypes = []Type{TypeUpx8, TypeOfficial, TypeThirdParty, TypeImgrunRand}

// String implements fmt.Stringer.
func (t Type) String() string { return string(t) }

// Valid reports whether t is one of the known provider types.
func (t Type) Valid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType converts a caller-supplied tag into a Type.
// Surrounding whitespace is ignored; matching is exact otherwise.
func ParseType(s string) (Type, error) {
	t := Type(strings.TrimSpace(s))
	if !t.Valid() {
		return "", errors.New(errors.ErrCodeInvalidProvider, "unknown provider type %q", s)
	}
	return t, nil
}
