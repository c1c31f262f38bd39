package httpclient

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ExtractText returns the text content of an HTML document. When the document has <pre> blocks
// only their contents are returned; otherwise all text outside script and style elements.
func ExtractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var pre []string
	var walkPre func(*html.Node)
	walkPre = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "pre" {
			pre = append(pre, nodeText(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkPre(c)
		}
	}
	walkPre(doc)
	if len(pre) > 0 {
		return strings.Join(pre, "\n"), nil
	}
	return nodeText(doc), nil
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "head":
				return
			case "br":
				sb.WriteByte('\n')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && (n.Data == "p" || n.Data == "div" || n.Data == "li") {
			sb.WriteByte('\n')
		}
	}
	walk(n)
	return sb.String()
}
