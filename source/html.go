package source

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// Pre-compiled regexes to avoid ReDoS with runtime compilation.
var (
	scriptRe         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	excessiveLinesRe = regexp.MustCompile(`\n{3,}`)
	multiSpaceRe     = regexp.MustCompile(`[ \t]{2,}`)
)

// placeholderURL satisfies the readability parser, which wants a base URL to
// resolve relative links against. Local files have none.
var placeholderURL = &url.URL{Scheme: "file", Path: "/"}

// HTMLConverter turns scraped HTML species pages into plain description
// text: article extraction first, then markdown, then flattened prose.
type HTMLConverter struct {
	converter *md.Converter
}

// NewHTMLConverter creates a converter.
func NewHTMLConverter() *HTMLConverter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	return &HTMLConverter{converter: converter}
}

// Convert extracts the description text from an HTML document. Pages with an
// identifiable article body use only that body; others fall back to the
// whole document with scripts and styles stripped.
func (c *HTMLConverter) Convert(content []byte) (string, error) {
	body := string(content)

	article, err := readability.FromReader(strings.NewReader(body), placeholderURL)
	if err == nil && strings.TrimSpace(article.Content) != "" {
		body = article.Content
	} else {
		body = scriptRe.ReplaceAllString(body, "")
		body = styleRe.ReplaceAllString(body, "")
	}

	markdown, err := c.converter.ConvertString(body)
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}

	return flattenMarkdown(markdown), nil
}

// flattenMarkdown reduces markdown to description prose: heading markers and
// emphasis go, paragraph breaks stay.
func flattenMarkdown(markdown string) string {
	lines := strings.Split(markdown, "\n")
	for i, line := range lines {
		line = strings.TrimLeft(line, "#> ")
		line = strings.ReplaceAll(line, "**", "")
		line = strings.ReplaceAll(line, "_", " ")
		lines[i] = strings.TrimRight(line, " ")
	}

	out := strings.Join(lines, "\n")
	out = excessiveLinesRe.ReplaceAllString(out, "\n\n")
	out = multiSpaceRe.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// StripTags removes all markup from an HTML fragment, keeping its text. It
// is the light-weight path for single-field values inside archive rows,
// where article extraction makes no sense.
func StripTags(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " ")
}
