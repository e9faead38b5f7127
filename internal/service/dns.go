package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"

	"recon/internal/model"
)

type exchangeFunc func(ctx context.Context, m *dns.Msg) (*dns.Msg, error)

type DNSService struct {
	Resolver string
	Timeout  time.Duration

	exchange exchangeFunc
}

func NewDNSService(resolver string, timeout time.Duration) *DNSService {
	if resolver == "" {
		resolver = "8.8.8.8:53"
	}
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	s := &DNSService{Resolver: resolver, Timeout: timeout}
	s.exchange = func(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
		c := &dns.Client{Timeout: s.Timeout}
		in, _, err := c.ExchangeContext(ctx, m, s.Resolver)
		return in, err
	}
	return s
}

// Resolve queries one record type for name. Failures never propagate:
// NXDOMAIN comes back as the single sentinel value, a clean empty answer
// as an empty slice, and anything else as an in-band "DNS error" entry.
func (s *DNSService) Resolve(ctx context.Context, name, rtype string) []string {
	qtype, ok := dns.StringToType[rtype]
	if !ok {
		return []string{fmt.Sprintf("DNS error: unknown record type %s", rtype)}
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), qtype)
	in, err := s.exchange(ctx, m)
	if err != nil {
		return []string{fmt.Sprintf("DNS error: %v", err)}
	}

	switch in.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return []string{"NXDOMAIN"}
	default:
		return []string{fmt.Sprintf("DNS error: %s", dns.RcodeToString[in.Rcode])}
	}

	out := []string{}
	for _, ans := range in.Answer {
		// CNAME chains pad the answer section with RRs of other types.
		if ans.Header().Rrtype != qtype {
			continue
		}
		out = append(out, rrText(ans))
	}
	return out
}

// Gather runs the base record types in a fixed order, then derives SPF
// from the TXT answers and DMARC from one extra query against the
// _dmarc subdomain. The result always holds exactly the 8 known keys.
func (s *DNSService) Gather(ctx context.Context, domain string) model.DNSRecords {
	records := model.DNSRecords{}
	for _, rt := range model.BaseRecordTypes {
		records[rt] = s.Resolve(ctx, domain, rt)
	}

	spf := []string{}
	for _, txt := range records["TXT"] {
		clean := strings.Trim(txt, "'\"")
		if strings.HasPrefix(strings.ToLower(clean), "v=spf1") {
			spf = append(spf, clean)
		}
	}
	records["SPF"] = spf

	dmarc := []string{}
	for _, txt := range s.Resolve(ctx, "_dmarc."+domain, "TXT") {
		clean := strings.Trim(txt, "'\"")
		if strings.HasPrefix(strings.ToLower(clean), "v=dmarc1") {
			dmarc = append(dmarc, clean)
		}
	}
	records["DMARC"] = dmarc

	return records
}

func rrText(ans dns.RR) string {
	switch t := ans.(type) {
	case *dns.A:
		return t.A.String()
	case *dns.AAAA:
		return t.AAAA.String()
	case *dns.CNAME:
		return strings.TrimSuffix(t.Target, ".")
	case *dns.NS:
		return strings.TrimSuffix(t.Ns, ".")
	case *dns.MX:
		return fmt.Sprintf("%d %s", t.Preference, strings.TrimSuffix(t.Mx, "."))
	case *dns.TXT:
		return strings.Join(t.Txt, "") // long TXT values arrive split
	default:
		return strings.TrimSuffix(ans.Header().Name, ".")
	}
}
