package content

import (
	"regexp"
	"strconv"
	"strings"
)

const fmDelimiter = "---"

var reNumber = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Frontmatter is the metadata block at the top of a post. Values are
// string, bool, float64 or []string.
type Frontmatter map[string]any

// Has reports whether key is present.
func (f Frontmatter) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// String returns the value for key as text. Numbers and booleans are
// formatted; lists and missing keys yield "".
func (f Frontmatter) String(key string) string {
	switch v := f[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// Strings returns a list value. A non-empty string becomes a one-element
// list; anything else is an empty list.
func (f Frontmatter) Strings(key string) []string {
	switch v := f[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case string:
		if v != "" {
			return []string{v}
		}
	}
	return []string{}
}

// Number returns a numeric value.
func (f Frontmatter) Number(key string) (float64, bool) {
	v, ok := f[key].(float64)
	return v, ok
}

// Bool returns a boolean value.
func (f Frontmatter) Bool(key string) (bool, bool) {
	v, ok := f[key].(bool)
	return v, ok
}

// ParseFrontmatter splits raw into its metadata block and body. It never
// fails: a document without a complete block yields empty metadata and the
// trimmed input as body.
func ParseFrontmatter(raw string) (Frontmatter, string) {
	fm := Frontmatter{}
	first, rest, ok := cutLine(raw)
	if !ok || first != fmDelimiter {
		return fm, strings.TrimSpace(raw)
	}
	var lines []string
	for {
		line, next, more := cutLine(rest)
		if line == fmDelimiter {
			for _, l := range lines {
				parseLine(fm, l)
			}
			return fm, next
		}
		if !more {
			return Frontmatter{}, strings.TrimSpace(raw)
		}
		lines = append(lines, line)
		rest = next
	}
}

// cutLine returns the first line of s without its terminator, the remainder
// after the newline, and whether a newline was found.
func cutLine(s string) (line, rest string, found bool) {
	line, rest, found = strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r"), rest, found
}

func parseLine(fm Frontmatter, line string) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	fm[key] = coerce(strings.TrimSpace(value))
}

func coerce(v string) any {
	if s, ok := unquote(v); ok {
		return s
	}
	if len(v) >= 2 && v[0] == '[' && v[len(v)-1] == ']' {
		inner := strings.TrimSpace(v[1 : len(v)-1])
		if inner == "" {
			return []string{}
		}
		parts := strings.Split(inner, ",")
		list := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if s, ok := unquote(p); ok {
				p = s
			}
			list = append(list, p)
		}
		return list
	}
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	if reNumber.MatchString(v) {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return v
}

func unquote(v string) (string, bool) {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1], true
	}
	return v, false
}
