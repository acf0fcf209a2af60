package extraction

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTagRe = regexp.MustCompile(`(?i)</?(?:p|br|li|ul|ol|div|span|strong|b|em|i|a|h[1-6]|table|tr|td|section)\b[^>]*>`)

// LooksLikeHTML reports whether s contains common markup tags.
func LooksLikeHTML(s string) bool {
	return htmlTagRe.MatchString(s)
}

// PlainText flattens an HTML description into lines, rendering list items as
// "- " bullets so section extraction can see them. Unparseable input is
// returned unchanged.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n- ")
		s.AppendHtml("\n")
	})
	doc.Find("p, div, section, h1, h2, h3, h4, h5, h6, ul, ol, tr").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n")
		s.AppendHtml("\n")
	})

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
