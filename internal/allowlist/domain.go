package allowlist

import (
	"errors"
	"fmt"
	"linkguard/internal/features"
	"net/netip"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// errNoRegisteredDomain is returned for hosts that have no registrable domain
// (empty hosts, IP literals and bare public suffixes).
var errNoRegisteredDomain = errors.New("host has no registrable domain")

// RegisteredDomain returns the registrable domain (eTLD+1) of rawURL, for
// example "google.co.uk" for "https://accounts.google.co.uk/x". It returns ""
// when the URL has no hostname or the hostname has no registrable domain.
func RegisteredDomain(rawURL string) string {
	d, err := RegisteredDomainOfHost(features.Hostname(rawURL))
	if err != nil {
		return ""
	}

	return d
}

// RegisteredDomainOfHost returns the lowercase eTLD+1 of host, honoring
// multi-part public suffixes such as "co.uk".
func RegisteredDomainOfHost(host string) (string, error) {
	host = cleanHost(host)
	if host == "" {
		return "", errNoRegisteredDomain
	}
	if _, err := netip.ParseAddr(host); err == nil {
		return "", errNoRegisteredDomain
	}

	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errNoRegisteredDomain, err)
	}

	return d, nil
}

// Normalize maps an allow-list entry to its lookup key. Entries may be bare
// hostnames or full URLs. The key is the registrable domain, or the cleaned
// hostname when there is none (IP literals, "localhost", bare public suffixes
// such as "blogspot.com"). Key applies the same mapping to URLs at decision
// time, so every entry can be hit by a URL on that exact host.
func Normalize(entry string) string {
	host := strings.TrimSpace(entry)
	if strings.Contains(host, "://") {
		host = features.Hostname(host)
	}

	return hostKey(host)
}

// Key returns the allow-list lookup key of rawURL, using the same mapping as
// Normalize. It returns "" when rawURL has no hostname. For hosts below a
// private suffix the key is the full registrable name, so "x.blogspot.com"
// does not match a "blogspot.com" entry.
func Key(rawURL string) string {
	return hostKey(features.Hostname(rawURL))
}

func hostKey(host string) string {
	host = cleanHost(host)
	if host == "" {
		return ""
	}
	if d, err := RegisteredDomainOfHost(host); err == nil {
		return d
	}

	return host
}

func cleanHost(host string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
}
