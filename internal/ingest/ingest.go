// Package ingest normalizes saved LLM responses before parsing.
//
// Responses copied out of a chat UI often arrive as HTML; those are pruned
// of page chrome and converted back to the markdown the parsers expect.
package ingest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// prunedElements never carry response text
var prunedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"button":   true,
	"svg":      true,
}

// ReadFile loads a saved response and normalizes it
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".html" || ext == ".htm" {
		return FromHTML(string(data))
	}
	return Normalize(string(data))
}

// Normalize strips a byte order mark and unifies line endings. Content that
// looks like an HTML document is converted to markdown first.
func Normalize(content string) (string, error) {
	if LooksLikeHTML(content) {
		return FromHTML(content)
	}
	return cleanText(content), nil
}

// LooksLikeHTML reports whether content starts like an HTML document or fragment
func LooksLikeHTML(content string) bool {
	head := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(content, "\ufeff")))
	for _, prefix := range []string{"<!doctype html", "<html", "<body", "<div", "<p>", "<article"} {
		if strings.HasPrefix(head, prefix) {
			return true
		}
	}
	return false
}

// FromHTML prunes non-content elements and converts the rest to markdown
func FromHTML(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	prune(doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(buf.String())
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	return cleanText(markdown), nil
}

// prune removes pruned elements from the tree in place
func prune(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && prunedElements[c.Data] {
			n.RemoveChild(c)
		} else {
			prune(c)
		}
		c = next
	}
}

func cleanText(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}
