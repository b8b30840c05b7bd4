package content

import (
	"regexp"
	"strings"
)

// Inline markdown patterns, applied in order so that bold-italic wins over
// bold and bold wins over italic.
var (
	boldItalicRegexp = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	boldRegexp       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRegexp     = regexp.MustCompile(`\*(.+?)\*`)
	linkRegexp       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

	orderedItemRegexp = regexp.MustCompile(`^\d+\.\s+`)
)

// MarkdownToHTML converts generated markdown into platform-safe HTML in a
// single deterministic pass. Supported: one leading H1 stripped (the title is
// stored separately), H1-H3 headers, bold/italic/bold-italic, links,
// unordered and ordered lists (consecutive items grouped under one <ul>), and
// paragraph wrapping per blank-line-separated block. Blocks already starting
// with an HTML tag pass through unwrapped, which also makes the conversion
// idempotent on its own output. Nested lists and tables are not supported.
func MarkdownToHTML(markdown string) string {
	normalized := strings.ReplaceAll(markdown, "\r\n", "\n")
	normalized = stripLeadingH1(normalized)

	lines := strings.Split(normalized, "\n")

	var out []string
	var listItems []string
	var paragraph []string

	flushList := func() {
		if len(listItems) == 0 {
			return
		}
		out = append(out, "<ul>"+strings.Join(listItems, "")+"</ul>")
		listItems = nil
	}
	flushParagraph := func() {
		if len(paragraph) == 0 {
			return
		}
		block := strings.Join(paragraph, " ")
		paragraph = nil
		if strings.HasPrefix(block, "<") {
			out = append(out, block)
			return
		}
		out = append(out, "<p>"+block+"</p>")
	}

	for _, line := range lines {
		converted := convertLine(line)
		switch {
		case converted == "":
			flushList()
			flushParagraph()
		case strings.HasPrefix(converted, "<li>"):
			flushParagraph()
			listItems = append(listItems, converted)
		case strings.HasPrefix(converted, "<h"):
			flushList()
			flushParagraph()
			out = append(out, converted)
		default:
			flushList()
			paragraph = append(paragraph, converted)
		}
	}
	flushList()
	flushParagraph()

	return strings.Join(out, "\n")
}

// stripLeadingH1 removes a single H1 when it is the first non-empty line.
func stripLeadingH1(markdown string) string {
	lines := strings.Split(markdown, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "# ") {
			return strings.Join(append(lines[:i:i], lines[i+1:]...), "\n")
		}
		break
	}
	return markdown
}

func convertLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(trimmed, "### "):
		return "<h3>" + convertInline(trimmed[4:]) + "</h3>"
	case strings.HasPrefix(trimmed, "## "):
		return "<h2>" + convertInline(trimmed[3:]) + "</h2>"
	case strings.HasPrefix(trimmed, "# "):
		return "<h1>" + convertInline(trimmed[2:]) + "</h1>"
	case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
		return "<li>" + convertInline(trimmed[2:]) + "</li>"
	case orderedItemRegexp.MatchString(trimmed):
		return "<li>" + convertInline(orderedItemRegexp.ReplaceAllString(trimmed, "")) + "</li>"
	}
	return convertInline(trimmed)
}

func convertInline(text string) string {
	text = boldItalicRegexp.ReplaceAllString(text, "<strong><em>$1</em></strong>")
	text = boldRegexp.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicRegexp.ReplaceAllString(text, "<em>$1</em>")
	text = linkRegexp.ReplaceAllString(text, `<a href="$2">$1</a>`)
	return text
}
