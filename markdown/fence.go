package markdown

import "strings"

// fence is an open fenced code block: its marker character and run length.
type fence struct {
	char byte
	n    int
}

// openFence reports whether line opens a fenced code block: up to three
// spaces of indent, then three or more backticks or tildes. info is the
// trimmed text after the marker. A backtick info string may not contain a
// backtick.
func openFence(line string) (f fence, info string, ok bool) {
	rest, ok := fenceIndent(line)
	if !ok {
		return fence{}, "", false
	}
	c := rest[0]
	if c != '`' && c != '~' {
		return fence{}, "", false
	}
	n := runLen(rest, c)
	if n < 3 {
		return fence{}, "", false
	}
	info = strings.TrimSpace(rest[n:])
	if c == '`' && strings.ContainsRune(info, '`') {
		return fence{}, "", false
	}
	return fence{char: c, n: n}, info, true
}

// closes reports whether line ends f: the same marker, at least as long,
// followed only by blanks.
func (f fence) closes(line string) bool {
	rest, ok := fenceIndent(line)
	if !ok || rest[0] != f.char {
		return false
	}
	n := runLen(rest, f.char)
	return n >= f.n && strings.TrimSpace(rest[n:]) == ""
}

// lang returns the first word of an info string.
func lang(info string) string {
	if i := strings.IndexAny(info, " \t"); i >= 0 {
		return info[:i]
	}
	return info
}

func fenceIndent(line string) (string, bool) {
	i := 0
	for i < len(line) && i < 4 && line[i] == ' ' {
		i++
	}
	if i > 3 || i == len(line) {
		return "", false
	}
	return line[i:], true
}

func runLen(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}
