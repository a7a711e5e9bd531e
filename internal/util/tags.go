package util

import (
	"fmt"
	"strings"
)

// ParsedTags holds user-supplied tag overrides keyed by canonical tag name.
type ParsedTags map[string]string

// ParseTagFlags parses repeated "Name=Value" flag values into overrides.
// Names are validated against the tag registry, so typos fail fast with a
// suggestion instead of silently writing nothing.
func ParseTagFlags(flags []string) (ParsedTags, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	parsed := make(ParsedTags, len(flags))
	for _, f := range flags {
		name, value, found := strings.Cut(f, "=")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid tag override %q, expected Name=Value", f)
		}
		info, err := GetTagByName(name)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("tag override %q has empty value", info.Name)
		}
		parsed[info.Name] = value
	}
	return parsed, nil
}

// Value returns the override for the named tag, or the generated fallback
// when no override was supplied.
func (p ParsedTags) Value(name, generated string) string {
	if p == nil {
		return generated
	}
	if v, ok := p[name]; ok {
		return v
	}
	return generated
}
