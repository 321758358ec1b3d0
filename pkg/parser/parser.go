package parser

import (
	"bufio"
	"bytes"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

type Parser struct{}

// IsHTML reports whether path names an HTML document by extension.
func IsHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

// ExtractText returns the readable text lines of an HTML document. The
// go-readability article text is preferred; documents it cannot distil fall
// back to the goquery body text with scripts and styles removed.
func (p *Parser) ExtractText(html []byte, path string) ([]string, error) {
	docURL := &url.URL{Scheme: "file", Path: filepath.ToSlash(path)}

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(bytes.NewReader(html), docURL)
	if err == nil {
		if lines := splitLines(article.TextContent); len(lines) > 0 {
			return lines, nil
		}
	}

	return bodyText(html)
}

func bodyText(html []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	doc.Find("script,style,noscript,template").Remove()

	var lines []string
	doc.Find("title").Each(func(i int, s *goquery.Selection) {
		lines = append(lines, splitLines(s.Text())...)
	})
	lines = append(lines, splitLines(doc.Find("body").Text())...)
	return lines, nil
}

// splitLines returns the trimmed, non-empty lines of input.
func splitLines(input string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
