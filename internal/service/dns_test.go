package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/miekg/dns"
)

func mustRR(t *testing.T, s string) dns.RR {
	t.Helper()
	rr, err := dns.NewRR(s)
	if err != nil {
		t.Fatalf("bad test RR %q: %v", s, err)
	}
	return rr
}

func fakeDNS(exchange exchangeFunc) *DNSService {
	s := NewDNSService("", 0)
	s.exchange = exchange
	return s
}

func answer(rcode int, rrs ...dns.RR) *dns.Msg {
	msg := new(dns.Msg)
	msg.Rcode = rcode
	msg.Answer = rrs
	return msg
}

func TestResolve_Classification(t *testing.T) {
	tests := []struct {
		name     string
		exchange exchangeFunc
		rtype    string
		want     []string
	}{
		{
			"A records",
			func(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
				return answer(dns.RcodeSuccess,
					mustRR(t, "example.com. 300 IN A 93.184.216.34"),
					mustRR(t, "example.com. 300 IN A 93.184.216.35")), nil
			},
			"A",
			[]string{"93.184.216.34", "93.184.216.35"},
		},
		{
			"NXDOMAIN",
			func(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
				return answer(dns.RcodeNameError), nil
			},
			"AAAA",
			[]string{"NXDOMAIN"},
		},
		{
			"no answer",
			func(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
				return answer(dns.RcodeSuccess), nil
			},
			"MX",
			[]string{},
		},
		{
			"exchange error",
			func(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
				return nil, errors.New("i/o timeout")
			},
			"A",
			[]string{"DNS error: i/o timeout"},
		},
		{
			"server failure",
			func(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
				return answer(dns.RcodeServerFailure), nil
			},
			"A",
			[]string{"DNS error: SERVFAIL"},
		},
		{
			"CNAME chain keeps only queried type",
			func(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
				return answer(dns.RcodeSuccess,
					mustRR(t, "www.example.com. 300 IN CNAME example.com."),
					mustRR(t, "example.com. 300 IN A 93.184.216.34")), nil
			},
			"A",
			[]string{"93.184.216.34"},
		},
		{
			"MX formatting",
			func(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
				return answer(dns.RcodeSuccess,
					mustRR(t, "example.com. 300 IN MX 10 mail.example.com.")), nil
			},
			"MX",
			[]string{"10 mail.example.com"},
		},
		{
			"split TXT joined",
			func(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
				return answer(dns.RcodeSuccess,
					mustRR(t, `example.com. 300 IN TXT "v=spf1 include:_spf.exam" "ple.com ~all"`)), nil
			},
			"TXT",
			[]string{"v=spf1 include:_spf.example.com ~all"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fakeDNS(tt.exchange).Resolve(context.Background(), "example.com", tt.rtype)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGather_AlwaysEightKeys(t *testing.T) {
	s := fakeDNS(func(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
		return nil, errors.New("network is unreachable")
	})

	records := s.Gather(context.Background(), "example.com")
	for _, rt := range []string{"A", "AAAA", "MX", "TXT", "NS", "CNAME", "SPF", "DMARC"} {
		if _, ok := records[rt]; !ok {
			t.Errorf("Missing key %s", rt)
		}
	}
	if len(records) != 8 {
		t.Errorf("Expected exactly 8 keys, got %d", len(records))
	}
}

func TestGather_DerivedRecords(t *testing.T) {
	var questions []string
	s := fakeDNS(func(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
		q := m.Question[0]
		questions = append(questions, q.Name)
		if q.Qtype != dns.TypeTXT {
			return answer(dns.RcodeSuccess), nil
		}
		if q.Name == "_dmarc.example.com." {
			return answer(dns.RcodeSuccess,
				mustRR(t, `_dmarc.example.com. 300 IN TXT "v=DMARC1; p=reject"`)), nil
		}
		return answer(dns.RcodeSuccess,
			mustRR(t, `example.com. 300 IN TXT "v=spf1 include:_spf.example.com ~all"`),
			mustRR(t, `example.com. 300 IN TXT "unrelated"`)), nil
	})

	records := s.Gather(context.Background(), "example.com")

	wantSPF := []string{"v=spf1 include:_spf.example.com ~all"}
	if !reflect.DeepEqual(records["SPF"], wantSPF) {
		t.Errorf("SPF derivation: got %v, want %v", records["SPF"], wantSPF)
	}
	wantDMARC := []string{"v=DMARC1; p=reject"}
	if !reflect.DeepEqual(records["DMARC"], wantDMARC) {
		t.Errorf("DMARC derivation: got %v, want %v", records["DMARC"], wantDMARC)
	}

	// 6 base queries plus the DMARC probe, in order.
	if len(questions) != 7 {
		t.Fatalf("Expected 7 queries, got %d: %v", len(questions), questions)
	}
	if questions[6] != "_dmarc.example.com." {
		t.Errorf("Last query should be the DMARC probe, got %s", questions[6])
	}
}

func TestGather_DMARCFailureStaysEmpty(t *testing.T) {
	s := fakeDNS(func(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
		if m.Question[0].Name == "_dmarc.example.com." {
			return answer(dns.RcodeNameError), nil
		}
		return answer(dns.RcodeSuccess), nil
	})

	records := s.Gather(context.Background(), "example.com")
	// The NXDOMAIN sentinel does not carry the v=dmarc1 prefix, so the
	// derived key filters it out.
	if len(records["DMARC"]) != 0 {
		t.Errorf("Expected empty DMARC, got %v", records["DMARC"])
	}
}
