// Package allowlist loads a ranked reference list of known-legitimate domains
// (Tranco/Alexa style "rank,domain" tables) into an immutable set of
// registrable domains used to override the phishing classifier.
package allowlist

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"linkguard/pkg/logger"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

// Options control how a reference table is read.
type Options struct {
	// TopN limits the number of domains read from the (ranked) table.
	// A value <= 0 reads the whole table.
	TopN int
}

// Set is an immutable set of registrable domains. The zero value and a nil
// *Set are empty sets; both are safe for concurrent use.
type Set struct {
	domains map[string]struct{}
}

// New builds a Set from the given entries, normalizing each one the same way
// Parse does.
func New(entries ...string) *Set {
	s := &Set{domains: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		s.add(e)
	}

	return s
}

// Contains reports whether domain is in the set. The lookup is an exact match
// after lowercasing and trimming a trailing dot; the empty domain never matches.
// Entries are stored under their Normalize key, so callers holding a URL
// should look up Key(url) rather than RegisteredDomain(url): the two differ
// for hosts without a registrable domain.
func (s *Set) Contains(domain string) bool {
	if s == nil || len(s.domains) == 0 {
		return false
	}
	domain = cleanHost(domain)
	if domain == "" {
		return false
	}
	_, ok := s.domains[domain]

	return ok
}

// Len returns the number of distinct domains in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}

	return len(s.domains)
}

func (s *Set) add(entry string) bool {
	d := Normalize(entry)
	if d == "" {
		return false
	}
	s.domains[d] = struct{}{}

	return true
}

// Parse reads a reference table from r. Rows are either "rank,domain" or a
// single "domain" column; a header row is skipped when present. Input may be
// UTF-8 or Latin-1. Blank rows are ignored.
func Parse(r io.Reader, opts Options) (*Set, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read allow-list: %w", err)
	}
	b = bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(b) {
		if b, err = charmap.ISO8859_1.NewDecoder().Bytes(b); err != nil {
			return nil, fmt.Errorf("could not decode allow-list as latin-1: %w", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(b))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	s := &Set{domains: make(map[string]struct{})}
	for row, count := 0, 0; opts.TopN <= 0 || count < opts.TopN; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not parse allow-list row %d: %w", row+1, err)
		}

		entry := domainCell(rec)
		if row == 0 && isHeader(rec) {
			continue
		}
		if s.add(entry) {
			count++
		}
	}

	return s, nil
}

// Load reads the reference table at path. It never fails: a missing or
// unreadable file is logged and yields an empty set, which degrades the
// decision policy to classifier-only mode.
func Load(ctx context.Context, path string, opts Options) *Set {
	ctx = logger.WithFields(ctx, zap.String("path", path))
	if path == "" {
		logger.Warn(ctx, "no allow-list configured, running in classifier-only mode")

		return New()
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Warn(ctx, "could not open allow-list, running in classifier-only mode", zap.Error(err))

		return New()
	}
	defer func() {
		_ = f.Close()
	}()

	s, err := Parse(f, opts)
	if err != nil {
		logger.Warn(ctx, "could not load allow-list, running in classifier-only mode", zap.Error(err))

		return New()
	}

	logger.Info(ctx, "allow-list loaded", zap.Int("domains", s.Len()))

	return s
}

// domainCell picks the domain column: the second column when there are at
// least two, otherwise the only one.
func domainCell(rec []string) string {
	switch len(rec) {
	case 0:
		return ""
	case 1:
		return rec[0]
	default:
		return rec[1]
	}
}

func isHeader(rec []string) bool {
	if strings.EqualFold(strings.TrimSpace(domainCell(rec)), "domain") {
		return true
	}
	if len(rec) < 2 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(rec[0]))

	return err != nil
}
