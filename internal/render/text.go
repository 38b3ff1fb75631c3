package render

import (
	"html"
	"strings"
	"unicode/utf8"

	xhtml "golang.org/x/net/html"
)

// HNToText converts HN's limited HTML to plain text with basic formatting.
// HN uses: <p> (paragraph), <a> (links), <i> (italic), <code> (inline code),
// <pre><code> (code blocks), and HTML entities. A width of zero or less
// disables wrapping.
func HNToText(raw string, width int) string {
	if raw == "" {
		return ""
	}

	// HN double-encodes some entities inside text nodes.
	raw = html.UnescapeString(raw)

	var tw textWriter
	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	for {
		tt := tokenizer.Next()
		if tt == xhtml.ErrorToken {
			return wrapText(strings.TrimSpace(tw.sb.String()), width)
		}
		tok := tokenizer.Token()
		switch tt {
		case xhtml.StartTagToken:
			tw.open(tok)
		case xhtml.EndTagToken:
			tw.close(tok)
		case xhtml.TextToken:
			tw.text(tok.Data)
		}
	}
}

type textWriter struct {
	sb        strings.Builder
	inPre     bool
	inCode    bool
	anchorURL string
}

func (w *textWriter) open(t xhtml.Token) {
	switch t.Data {
	case "p":
		if w.sb.Len() > 0 {
			w.sb.WriteString("\n\n")
		}
	case "i", "em":
		w.sb.WriteString("*")
	case "code":
		if !w.inPre {
			w.sb.WriteString("`")
		}
		w.inCode = true
	case "pre":
		w.inPre = true
		w.sb.WriteString("\n")
	case "a":
		for _, attr := range t.Attr {
			if attr.Key == "href" {
				w.anchorURL = attr.Val
			}
		}
	}
}

func (w *textWriter) close(t xhtml.Token) {
	switch t.Data {
	case "i", "em":
		w.sb.WriteString("*")
	case "code":
		if !w.inPre {
			w.sb.WriteString("`")
		}
		w.inCode = false
	case "pre":
		w.inPre = false
		w.sb.WriteString("\n")
	case "a":
		// Only append the URL if it differs from the link text.
		if w.anchorURL != "" && !strings.HasSuffix(strings.TrimSpace(w.sb.String()), w.anchorURL) {
			w.sb.WriteString(" [")
			w.sb.WriteString(w.anchorURL)
			w.sb.WriteString("]")
		}
		w.anchorURL = ""
	}
}

func (w *textWriter) text(s string) {
	if !w.inPre {
		w.sb.WriteString(s)
		return
	}
	// Preformatted lines are indented by 4 spaces and never wrapped.
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			w.sb.WriteString("\n")
		}
		if line != "" {
			w.sb.WriteString("    ")
			w.sb.WriteString(line)
		}
	}
}

// wrapText performs simple word wrapping to the given width.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var result strings.Builder
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.HasPrefix(paragraph, "    ") {
			result.WriteString(paragraph)
			result.WriteString("\n")
			continue
		}
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}
		lineLen := 0
		for i, word := range words {
			wlen := utf8.RuneCountInString(word)
			if i > 0 && lineLen+1+wlen > width {
				result.WriteString("\n")
				lineLen = 0
			} else if i > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += wlen
		}
		result.WriteString("\n")
	}
	return strings.TrimRight(result.String(), "\n")
}

// Excerpt flattens HN HTML to a single line of at most limit runes.
func Excerpt(raw string, limit int) string {
	text := strings.Join(strings.Fields(HNToText(raw, 0)), " ")
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
