// Package semver classifies dependency version strings.
//
// It is a thin layer over github.com/Masterminds/semver/v3. Classification is
// advisory: callers use it to warn about unstable pins, never to rewrite a
// version.
package semver

import (
	"fmt"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// Stability describes how reproducible a declared version is.
type Stability string

const (
	// Stable is a plain release version such as "1.4.0".
	Stable Stability = "stable"
	// Prerelease is a semantic version with a pre-release tag such as "2.0.0-rc.1".
	Prerelease Stability = "prerelease"
	// Snapshot is a moving pre-release build such as "5.20.0-SNAPSHOT".
	Snapshot Stability = "snapshot"
	// Dynamic is a selector resolved at build time: "latest", "1.+", ranges.
	Dynamic Stability = "dynamic"
	// Unknown is any other non-empty string.
	Unknown Stability = "unknown"
)

// Unstable reports whether a version with this stability can change between
// two builds with an identical declaration.
func (s Stability) Unstable() bool {
	return s != Stable
}

// Version is a semantic version.
type Version struct {
	v *mm.Version
}

func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(raw)
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

// Prerelease returns the pre-release tag, or "" for release versions.
func (v Version) Prerelease() string {
	if v.v == nil {
		return ""
	}
	return v.v.Prerelease()
}

// Classify returns the stability of a raw version string.
func Classify(raw string) Stability {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Unknown
	}
	if isDynamic(s) {
		return Dynamic
	}
	v, err := ParseVersion(s)
	if err != nil {
		if strings.HasSuffix(strings.ToUpper(s), "-SNAPSHOT") {
			return Snapshot
		}
		return Unknown
	}
	pre := v.Prerelease()
	switch {
	case pre == "":
		return Stable
	case strings.EqualFold(pre, "SNAPSHOT") || strings.HasSuffix(strings.ToUpper(pre), "-SNAPSHOT"):
		return Snapshot
	default:
		return Prerelease
	}
}

func isDynamic(s string) bool {
	lower := strings.ToLower(s)
	if lower == "latest" || strings.HasPrefix(lower, "latest.") {
		return true
	}
	if strings.HasSuffix(s, "+") {
		return true
	}
	// Maven/Gradle ranges: [1.0,2.0), (,1.5]
	if strings.ContainsAny(s[:1], "[(") && strings.ContainsAny(s[len(s)-1:], "])") {
		return true
	}
	return false
}
