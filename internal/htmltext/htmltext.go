// Package htmltext linearizes raw markup into plain text that keeps block
// breaks and list bullets. It is tolerant of malformed markup and never fails.
package htmltext

import (
	"regexp"
	"strings"

	"github.com/Ahnaf19/JobSnap/internal/textutil"
	"github.com/PuerkitoBio/goquery"
)

var (
	scriptBlock  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	styleBlock   = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`)
	lineBreak    = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockClose   = regexp.MustCompile(`(?i)</(p|div|section|article|header|footer|tr|table|ul|ol|h[1-6])\s*>`)
	listItemOpen = regexp.MustCompile(`(?i)<li\b[^>]*>`)
	listItemEnd  = regexp.MustCompile(`(?i)</li\s*>`)
	anyTag       = regexp.MustCompile(`<[^>]+>`)
)

var entities = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&#x27;", "'",
)

// HTMLToText flattens markup: script and style blocks and <br> become line
// breaks, closing block tags end a line, <li> opens a "- " bullet line, every
// other tag becomes a space, and the common entities are decoded.
func HTMLToText(html string) string {
	text := scriptBlock.ReplaceAllString(html, "\n")
	text = styleBlock.ReplaceAllString(text, "\n")
	text = lineBreak.ReplaceAllString(text, "\n")
	text = blockClose.ReplaceAllString(text, "\n")
	text = listItemOpen.ReplaceAllString(text, "\n- ")
	text = listItemEnd.ReplaceAllString(text, "")
	text = anyTag.ReplaceAllString(text, " ")
	text = DecodeEntities(text)
	return textutil.NormalizeWhitespace(text)
}

// DecodeEntities decodes &nbsp; &amp; &lt; &gt; &quot; &#39; and &#x27;.
func DecodeEntities(text string) string {
	return entities.Replace(text)
}

// ExtractTitleTag returns the normalized text of the document's <title>.
func ExtractTitleTag(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}
	sel := doc.Find("title").First()
	if sel.Length() == 0 {
		return "", false
	}
	title := textutil.NormalizeWhitespace(DecodeEntities(sel.Text()))
	if title == "" {
		return "", false
	}
	return title, true
}
