package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"

	"recon/internal/model"
)

// rawCap bounds the free-text WHOIS payload kept on the record.
const rawCap = 2000

const dateLayout = "2006-01-02 15:04:05"

// whoisFetch is swappable in tests.
var whoisFetch = whois.Whois

// NormalizeWhois looks up WHOIS data for domain and flattens it into a
// WhoisRecord. It never returns an error: any fetch or parse failure
// comes back as the record's error variant so DNS gathering and
// rendering can still proceed.
func NormalizeWhois(domain string) model.WhoisRecord {
	raw, err := fetchWhois(domain)
	if err != nil {
		return model.WhoisRecord{Error: fmt.Sprintf("WHOIS failed: %v", err)}
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		return model.WhoisRecord{Error: fmt.Sprintf("WHOIS failed: %v", err)}
	}

	rec := model.WhoisRecord{
		Domain:      domain,
		NameServers: []string{},
		Status:      []string{},
		Raw:         truncate(raw, rawCap),
	}
	if parsed.Registrar != nil {
		rec.Registrar = parsed.Registrar.Name
	}
	if d := parsed.Domain; d != nil {
		rec.CreationDate = formatDate(d.CreatedDateInTime, d.CreatedDate)
		rec.UpdatedDate = formatDate(d.UpdatedDateInTime, d.UpdatedDate)
		rec.ExpirationDate = formatDate(d.ExpirationDateInTime, d.ExpirationDate)
		rec.NameServers = normalizeNameServers(d.NameServers)
		// Status keeps source order.
		rec.Status = append(rec.Status, d.Status...)
	}
	return rec
}

// fetchWhois queries the registry and chases referrals the same way the
// interactive whois tools do: TLD fallbacks when no server is known,
// IANA for a referral, and the registrar's own server when the registry
// names one and the answer is substantially richer.
func fetchWhois(target string) (string, error) {
	raw, err := whoisFetch(target)
	if err != nil && strings.Contains(err.Error(), "no whois server found") {
		tld := ""
		parts := strings.Split(target, ".")
		if len(parts) > 1 {
			tld = strings.ToLower(parts[len(parts)-1])
		}

		fallbacks := map[string]string{
			"info": "whois.nic.info",
			"biz":  "whois.nic.biz",
			"mobi": "whois.dotmobi.net",
		}
		if server, ok := fallbacks[tld]; ok {
			raw, err = whoisFetch(target, server)
		}

		if err != nil || raw == "" {
			if server := ianaReferral(target); server != "" {
				raw, err = whoisFetch(target, server)
			}
		}
	}
	if err != nil {
		return "", err
	}

	if strings.Contains(raw, "Registrar WHOIS Server:") {
		for _, line := range strings.Split(raw, "\n") {
			if !strings.Contains(line, "Registrar WHOIS Server:") {
				continue
			}
			parts := strings.SplitN(line, ":", 2)
			if len(parts) > 1 {
				if refServer := strings.TrimSpace(parts[1]); refServer != "" {
					refRaw, refErr := whoisFetch(target, refServer)
					if refErr == nil && len(refRaw) > len(raw)/2 {
						raw = refRaw
					}
				}
			}
			break
		}
	}

	return stripComments(raw), nil
}

func ianaReferral(target string) string {
	ianaRaw, err := whoisFetch(target, "whois.iana.org")
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(ianaRaw, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		if strings.HasPrefix(lower, "whois:") || strings.HasPrefix(lower, "refer:") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) > 1 {
				if server := strings.TrimSpace(parts[1]); server != "" {
					return server
				}
			}
		}
	}
	return ""
}

// stripComments drops %/# comment lines and collapses blank runs.
func stripComments(raw string) string {
	var filtered []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "%") || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if trimmed == "" && (len(filtered) == 0 || filtered[len(filtered)-1] == "") {
			continue
		}
		filtered = append(filtered, line)
	}
	return strings.Join(filtered, "\n")
}

// formatDate prefers the parsed time; when the registry's value did not
// parse as a date the original string is kept as-is.
func formatDate(t *time.Time, raw string) string {
	if t != nil {
		return t.UTC().Format(dateLayout)
	}
	return raw
}

// normalizeNameServers lowercases, trims whitespace and trailing dots,
// drops empties, deduplicates and sorts.
func normalizeNameServers(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	for _, ns := range in {
		ns = strings.TrimRight(strings.ToLower(strings.TrimSpace(ns)), ".")
		if ns == "" {
			continue
		}
		seen[ns] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for ns := range seen {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
