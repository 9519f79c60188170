// Package links extracts the hyperlinks of an HTML document, typically an
// email body, so they can be checked one by one.
package links

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// skippedSchemes never point at a web page.
var skippedSchemes = []string{"mailto:", "javascript:", "tel:", "sms:", "data:", "cid:"} //nolint: gochecknoglobals

// Extract returns the href of every anchor of html, trimmed, deduplicated and
// in document order. Empty hrefs, fragments and non-web schemes are skipped.
func Extract(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("could not parse html: %w", err)
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if skip(href) {
			return
		}
		if _, ok := seen[href]; ok {
			return
		}
		seen[href] = struct{}{}
		out = append(out, href)
	})

	return out, nil
}

func skip(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return true
	}

	lower := strings.ToLower(href)
	for _, scheme := range skippedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}

	return false
}
