package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parse reads an HTML document and returns its <html> element as a Node
// tree. Text, comments and doctype nodes are dropped.
func Parse(r io.Reader) (*Node, error) {
	root, _, err := parse(r)
	return root, err
}

// ParseDocument parses r into a Document located at loc, taking the title
// from the <title> element.
func ParseDocument(r io.Reader, loc Location) (*Document, error) {
	root, title, err := parse(r)
	if err != nil {
		return nil, err
	}
	doc := NewDocument(root, loc)
	doc.Title = title
	return doc, nil
}

func parse(r io.Reader) (*Node, string, error) {
	tree, err := html.Parse(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse html: %w", err)
	}

	var root *Node
	var title string
	for c := tree.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			root = convert(c, &title)
			break
		}
	}
	if root == nil {
		return nil, "", fmt.Errorf("html document has no root element")
	}
	return root, title, nil
}

func convert(src *html.Node, title *string) *Node {
	n := &Node{Tag: src.Data}
	for _, a := range src.Attr {
		n.SetAttr(a.Key, a.Val)
	}
	if src.Data == "title" && *title == "" {
		*title = strings.TrimSpace(textOf(src))
	}
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		n.AppendChild(convert(c, title))
	}
	return n
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
