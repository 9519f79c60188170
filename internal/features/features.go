// Package features turns a URL string into the fixed-width numeric feature
// vector the phishing classifier is trained on.
//
// Extraction is a pure, total function: malformed input never returns an
// error or panics, components that cannot be recovered count as zero.
package features

import (
	"net/netip"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Names of the structural columns.
const (
	URLLength      = "url_length"
	HostnameLength = "hostname_length"
	IP             = "ip"
	HTTPSToken     = "https_token"
	WWWCount       = "total_of_www"
	ComCount       = "total_of_com"
	HTTPCount      = "total_of_http_in_path"
)

// countedChars are the punctuation/marker characters counted individually,
// in training column order.
var countedChars = []string{ //nolint: gochecknoglobals
	".", "-", "@", "?", "&", "=", "_", "~", "%", "/", "*", ":", ",", ";", "$",
}

// columns is the training-time column order. It must never be reordered, the
// persisted models depend on it.
var columns = func() []string { //nolint: gochecknoglobals
	cols := []string{URLLength, HostnameLength, IP, HTTPSToken}
	for _, c := range countedChars {
		cols = append(cols, CharColumn(c))
	}

	return append(cols, WWWCount, ComCount, HTTPCount)
}()

// CharColumn returns the column name holding the occurrence count of c.
func CharColumn(c string) string { return "total_of" + c }

// Columns returns a copy of the ordered feature schema.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)

	return out
}

// IsBinary reports whether col is a 0/1 flag column. Flag columns are never
// standard-scaled.
func IsBinary(col string) bool {
	return col == IP || col == HTTPSToken
}

// Vector maps feature names to values. A name that is absent reads as 0.
type Vector map[string]float64

// Values aligns v to the given column order: missing features default to 0
// and features not listed in cols are dropped.
func (v Vector) Values(cols []string) []float64 {
	out := make([]float64, len(cols))
	for i, c := range cols {
		out[i] = v[c]
	}

	return out
}

// Extract computes the feature vector of rawURL.
func Extract(rawURL string) Vector {
	v := make(Vector, len(columns))

	host := Hostname(rawURL)

	v[URLLength] = float64(utf8.RuneCountInString(rawURL))
	v[HostnameLength] = float64(utf8.RuneCountInString(host))
	v[IP] = flag(isIP(host))
	v[HTTPSToken] = flag(Scheme(rawURL) == "https")

	for _, c := range countedChars {
		v[CharColumn(c)] = float64(strings.Count(rawURL, c))
	}

	v[WWWCount] = float64(strings.Count(rawURL, "www"))
	v[ComCount] = float64(strings.Count(rawURL, "com"))
	v[HTTPCount] = float64(strings.Count(rawURL, "http"))

	return v
}

// IsIPAddress reports whether the hostname of rawURL is an IPv4 or IPv6
// literal. Any parse failure yields false.
func IsIPAddress(rawURL string) bool {
	return isIP(Hostname(rawURL))
}

// Scheme returns the lowercased scheme of rawURL, or "" when it has none.
// It falls back to a lexical scan when the URL does not parse.
func Scheme(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return u.Scheme
	}

	return lexicalScheme(strings.TrimSpace(rawURL))
}

// Hostname returns the lowercased hostname of rawURL without port, brackets
// or user info. It returns "" when the URL has no authority component.
func Hostname(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return strings.ToLower(u.Hostname())
	}

	return strings.ToLower(lexicalHost(strings.TrimSpace(rawURL)))
}

func isIP(host string) bool {
	if host == "" {
		return false
	}
	_, err := netip.ParseAddr(host)

	return err == nil
}

func flag(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

// lexicalScheme extracts "scheme:" following RFC 3986 character rules
// without validating the rest of the string.
func lexicalScheme(s string) string {
	i := strings.IndexByte(s, ':')
	if i <= 0 || !isASCIILetter(s[0]) {
		return ""
	}
	for j := 1; j < i; j++ {
		c := s[j]
		if !isASCIILetter(c) && !('0' <= c && c <= '9') && c != '+' && c != '-' && c != '.' {
			return ""
		}
	}

	return strings.ToLower(s[:i])
}

// lexicalHost extracts the host from "//userinfo@host:port/..." when the URL
// parser rejected the input (for example because of a space in the host).
func lexicalHost(s string) string {
	if scheme := lexicalScheme(s); scheme != "" {
		s = s[len(scheme)+1:]
	}
	if !strings.HasPrefix(s, "//") {
		return ""
	}
	authority := s[2:]
	if i := strings.IndexAny(authority, "/?#"); i >= 0 {
		authority = authority[:i]
	}
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		authority = authority[i+1:]
	}
	if strings.HasPrefix(authority, "[") {
		if i := strings.IndexByte(authority, ']'); i > 0 {
			return authority[1:i]
		}

		return ""
	}
	if i := strings.IndexByte(authority, ':'); i >= 0 {
		authority = authority[:i]
	}

	return authority
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
