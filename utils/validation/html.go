package validation

import (
	"strings"

	"golang.org/x/net/html"
)

// blockElements get a line break after their text
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// StripHTML returns the visible text of an HTML fragment. Script and style
// contents are dropped, block elements become line breaks and runs of spaces
// collapse. Plain text passes through unchanged apart from trimming.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return SanitizeString(s)
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return SanitizeString(s)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			b.WriteString("\n")
		}
	}
	walk(doc)

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return SanitizeString(strings.Join(out, "\n"))
}
