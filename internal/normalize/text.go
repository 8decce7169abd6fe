package normalize

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// htmlTagPattern detects markup worth converting in descriptions.
var htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|strong|em|a|ul|ol|li|h[1-6]|table|tr|td)[\s>/]`)

// CleanText decodes entities, drops tags, NFC-normalizes and collapses
// whitespace. Used for names, which vendors often copy out of HTML.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		doc, err := html.Parse(strings.NewReader(s))
		if err == nil {
			var buf strings.Builder
			extractText(doc, &buf)
			s = buf.String()
		} else {
			s = html.UnescapeString(s)
		}
	}
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

func extractText(n *html.Node, buf *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		buf.WriteString(n.Data)
	case html.ElementNode:
		switch n.Data {
		case "br", "p", "div", "li":
			buf.WriteByte(' ')
		case "script", "style":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, buf)
	}
}

// Markdown converts an HTML description to Markdown. Plain text is
// returned trimmed but otherwise untouched.
func Markdown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !htmlTagPattern.MatchString(strings.ToLower(s)) {
		return s
	}
	md, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(md)
}
