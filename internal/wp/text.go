package wp

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// StripShortcodes removes shortcodes from content. An enclosing shortcode is
// removed together with its content; an escaped shortcode such as [[gallery]]
// is unescaped to [gallery].
func StripShortcodes(content string) string {
	if !strings.Contains(content, "[") {
		return content
	}
	var b strings.Builder
	rest := content
	for {
		i := strings.IndexByte(rest, '[')
		if i < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:i])
		rest = rest[i:]

		if strings.HasPrefix(rest, "[[") {
			if end := strings.Index(rest, "]]"); end > 0 {
				b.WriteString(rest[1 : end+1])
				rest = rest[end+2:]
				continue
			}
		}

		tag, ok := parseShortcodeTag(rest)
		if !ok {
			b.WriteByte('[')
			rest = rest[1:]
			continue
		}
		rest = rest[tag.length:]
		if tag.closing || tag.selfClosing {
			continue
		}
		if end := strings.Index(rest, "[/"+tag.name+"]"); end >= 0 {
			rest = rest[end+len(tag.name)+3:]
		}
	}
}

type shortcodeTag struct {
	name        string
	length      int
	closing     bool
	selfClosing bool
}

// parseShortcodeTag reads the tag at the start of s, which begins with '['.
func parseShortcodeTag(s string) (shortcodeTag, bool) {
	var tag shortcodeTag
	i := 1
	if i < len(s) && s[i] == '/' {
		tag.closing = true
		i++
	}
	start := i
	for i < len(s) && isShortcodeNameByte(s[i]) {
		i++
	}
	if i == start || i >= len(s) {
		return tag, false
	}
	tag.name = s[start:i]
	switch s[i] {
	case ']', '/', ' ', '\t', '\n', '\r':
	default:
		return tag, false
	}
	end := strings.IndexByte(s[i:], ']')
	if end < 0 {
		return tag, false
	}
	end += i
	if strings.IndexByte(s[i:end], '[') >= 0 {
		return tag, false
	}
	tag.selfClosing = !tag.closing && s[end-1] == '/'
	tag.length = end + 1
	return tag, true
}

func isShortcodeNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}

// StripAllTags returns the text content of an HTML fragment. Script and style
// elements are dropped along with their content, and character references
// are decoded.
func StripAllTags(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			if name, _ := z.TagName(); isRawTextElement(string(name)) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isRawTextElement(string(name)) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isRawTextElement(name string) bool { return name == "script" || name == "style" }

var wordSeparators = regexp.MustCompile(`[\n\r\t ]+`)

// TrimWords strips tags from text and cuts it to at most n words. When words
// were dropped, more is appended to the result.
func TrimWords(text string, n int, more string) string {
	words := wordSeparators.Split(StripAllTags(text), -1)
	kept := words[:0]
	for _, w := range words {
		if w != "" {
			kept = append(kept, w)
		}
	}
	if len(kept) > n {
		return strings.Join(kept[:n], " ") + more
	}
	return strings.Join(kept, " ")
}

var (
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
	blockStart     = regexp.MustCompile(`(?i)^<(?:p|div|ul|ol|li|h[1-6]|blockquote|pre|table|figure|hr|section|article|aside|header|footer|nav|dl|form|address)[\s/>]`)
)

// Autop wraps blank-line separated blocks of text in paragraph tags and turns
// the remaining line breaks into <br /> tags. Blocks that already start with
// a block-level element are left alone.
func Autop(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, block := range paragraphBreak.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if blockStart.MatchString(block) {
			b.WriteString(block)
		} else {
			b.WriteString("<p>")
			b.WriteString(strings.ReplaceAll(block, "\n", "<br />\n"))
			b.WriteString("</p>")
		}
		b.WriteString("\n")
	}
	return b.String()
}
