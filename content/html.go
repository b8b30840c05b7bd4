package content

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRunRegexp = regexp.MustCompile(`\s+`)

// HTMLToText strips markup and collapses whitespace, so that already-rendered
// content can feed the keyword extractor. On unparsable input the raw string
// is returned unchanged.
func HTMLToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	text := doc.Text()
	return strings.TrimSpace(whitespaceRunRegexp.ReplaceAllString(text, " "))
}
