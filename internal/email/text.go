package email

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Placeholder tokens substituted for entities that carry no topical signal.
const (
	TokenURL   = "URL"
	TokenEmail = "EMAIL"
	TokenDate  = "DATE"
	TokenPhone = "PHONE"
	TokenNum   = "NUM"
)

// Substitutions run in this order; numbers last so dates and phones win.
var placeholders = []struct { //nolint: gochecknoglobals
	re    *regexp.Regexp
	token string
}{
	{regexp.MustCompile(`https?://\S+`), TokenURL},
	{regexp.MustCompile(`[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`), TokenEmail},
	{regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`), TokenDate},
	{regexp.MustCompile(`\b\d{10}\b`), TokenPhone},
	{regexp.MustCompile(`\b\d+\b`), TokenNum},
}

// foldPool holds decompose, strip accents, recompose and case fold chains.
var foldPool = sync.Pool{ //nolint: gochecknoglobals
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
			cases.Fold(),
		)
	},
}

// StripHTML returns the visible text of an HTML body, script and style
// content removed, text nodes joined by single spaces. Plain text passes
// through with its whitespace collapsed.
func StripHTML(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return strings.Join(strings.Fields(body), " ")
	}
	doc.Find("script, style").Remove()

	var parts []string
	doc.Contents().Each(func(_ int, s *goquery.Selection) {
		collectText(s, &parts)
	})

	return strings.Join(parts, " ")
}

func collectText(s *goquery.Selection, parts *[]string) {
	if goquery.NodeName(s) == "#text" {
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			*parts = append(*parts, text)
		}

		return
	}
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		collectText(c, parts)
	})
}

// Fold lowercases text and strips diacritics ("Café" becomes "cafe").
func Fold(text string) string {
	text = strings.ToValidUTF8(text, " ")

	tr := foldPool.Get().(transform.Transformer) //nolint: forcetypeassert
	out, _, err := transform.String(tr, text)
	tr.Reset()
	foldPool.Put(tr)
	if err != nil {
		return strings.ToLower(text)
	}

	return out
}

// Preprocess turns raw text into classifier tokens: folded to lowercase
// ASCII-like letters, entities replaced by placeholder tokens, alphabetic
// words of at least two letters kept, English stop words dropped.
func Preprocess(text string) []string {
	text = Fold(text)
	for _, p := range placeholders {
		text = p.re.ReplaceAllString(text, " "+p.token+" ")
	}

	words := strings.FieldsFunc(text, func(r rune) bool { return !unicode.IsLetter(r) })
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len([]rune(w)) < 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}

	return tokens
}
