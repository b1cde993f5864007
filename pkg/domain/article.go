package domain

import (
	"strconv"
	"strings"
)

// article statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// DefaultCategory is used for articles without a category key
const DefaultCategory = "ai"

// Article represents a single markdown article parsed from the content directory
type Article struct {
	Slug string   // file name without the .md extension
	Meta Meta     // frontmatter values
	Keys []string // frontmatter keys in the order they appear in the file
	Body string
}

// Status returns article status, published if not set
func (a Article) Status() string {
	return a.Meta.StringOr("status", StatusPublished)
}

// IsPublished returns true if the article should be included in generated indices
func (a Article) IsPublished() bool {
	return a.Status() == StatusPublished
}

// Category returns article category, DefaultCategory if not set
func (a Article) Category() string {
	return a.Meta.StringOr("category", DefaultCategory)
}

// Meta holds frontmatter values. Each value is a string, float64 or bool.
type Meta map[string]any

// Has returns true if the key is present, regardless of its value
func (m Meta) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// String returns value of the key formatted as a string, empty for missing keys
func (m Meta) String(key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// StringOr returns value of the key as a string, or def if the value is missing or falsy
func (m Meta) StringOr(key, def string) string {
	v := m.Or(key, def)
	return FormatValue(v)
}

// Or returns the value of the key, or def if the value is missing or falsy.
// Falsy values are empty strings, zero numbers and false.
func (m Meta) Or(key string, def any) any {
	v, ok := m[key]
	if !ok || !Truthy(v) {
		return def
	}
	return v
}

// Int returns numeric value of the key, and false if it's missing or not a whole number
func (m Meta) Int(key string) (int, bool) {
	switch v := m[key].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Truthy reports whether the value is non-empty, non-zero and not false
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case float64:
		return val != 0
	case bool:
		return val
	default:
		return true
	}
}

// FormatValue converts a frontmatter value to its string form
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
