package markdown

import (
	"regexp"
	"strings"
)

var (
	reHeading       = regexp.MustCompile(`^ {0,3}(#{1,6})[ \t]+(.+)$`)
	reClosingHashes = regexp.MustCompile(`[ \t]+#+[ \t]*$`)
)

// parseHeading returns the level and text of an ATX heading line. An
// optional closing run of hashes is dropped.
func parseHeading(line string) (int, string, bool) {
	m := reHeading.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	text := strings.TrimSpace(reClosingHashes.ReplaceAllString(m[2], ""))
	if text == "" {
		return 0, "", false
	}
	return len(m[1]), text, true
}

// Heading is one table-of-contents entry.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// ExtractTOC returns the ATX headings of src in document order. Lines inside
// backtick or tilde fenced code blocks are skipped; an unclosed fence runs
// to the end of the document. Levels are reported as written; a level 3
// heading without an enclosing level 2 is fine.
func ExtractTOC(src string) []Heading {
	anchors := NewAnchors()
	var toc []Heading
	var code *fence
	for _, raw := range strings.Split(NormalizeFences(src), "\n") {
		line := strings.TrimRight(raw, "\r")
		if code != nil {
			if code.closes(line) {
				code = nil
			}
			continue
		}
		if f, _, ok := openFence(line); ok {
			code = &f
			continue
		}
		level, text, ok := parseHeading(line)
		if !ok {
			continue
		}
		toc = append(toc, Heading{
			Level: level,
			Text:  text,
			ID:    anchors.Next(text),
		})
	}
	return toc
}
