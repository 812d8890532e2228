package manifest

import (
	"fmt"
	"strings"
)

// ParseExternalNotation parses Gradle dependency notation
// "group:artifact[:version]". The version is left empty when absent.
func ParseExternalNotation(s string) (ExternalPackageReference, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	switch len(parts) {
	case 2, 3:
	default:
		return ExternalPackageReference{}, fmt.Errorf("external notation %q: want group:artifact[:version]", s)
	}
	for _, p := range parts[:2] {
		if strings.TrimSpace(p) == "" {
			return ExternalPackageReference{}, fmt.Errorf("external notation %q: empty group or artifact", s)
		}
	}

	ref := ExternalPackageReference{Coordinate: parts[0] + ":" + parts[1]}
	if len(parts) == 3 {
		ref.Version = parts[2]
	}
	return ref, nil
}

// ModuleName normalises a project path such as ":idea" to the module name.
// Nested paths keep their inner separators (":a:b" becomes "a:b").
func ModuleName(path string) string {
	return strings.TrimPrefix(strings.TrimSpace(path), ":")
}
