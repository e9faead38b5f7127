// Package report renders recon results for a terminal. Every function
// writes to the caller's writer and leaves the data untouched.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"recon/internal/model"
)

const bannerTimeLayout = "2006-01-02 15:04:05"

// Banner prints the opening panel with the target and the run start time.
func Banner(w io.Writer, domain string, start time.Time) {
	body := fmt.Sprintf("WHOIS & DNS Recon\nTarget: %s\nTime: %s UTC",
		domain, start.UTC().Format(bannerTimeLayout))
	panel(w, "Recon", body, text.Colors{text.FgBlue})
}

// RenderWhois prints either the error panel or the WHOIS summary table.
func RenderWhois(w io.Writer, rec model.WhoisRecord) {
	if rec.Error != "" {
		panel(w, "WHOIS", rec.Error, text.Colors{text.FgRed})
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("WHOIS: %s", rec.Domain)
	t.AppendHeader(table.Row{"Field", "Value"})

	rows := []struct{ key, value string }{
		{"Registrar", orDash(rec.Registrar)},
		{"Created", orDash(rec.CreationDate)},
		{"Updated", orDash(rec.UpdatedDate)},
		{"Expires", orDash(rec.ExpirationDate)},
		{"Name Servers", joinOrDash(rec.NameServers)},
		{"Status", joinOrDash(rec.Status)},
	}
	for _, r := range rows {
		t.AppendRow(table.Row{r.key, r.value})
	}
	t.Render()
}

// RenderDNS prints the base record-type table followed by the SPF and
// DMARC panels. The derived keys stay out of the table.
func RenderDNS(w io.Writer, records model.DNSRecords, domain string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("DNS Records: %s", domain)
	t.AppendHeader(table.Row{"Type", "Values"})
	for _, rt := range model.BaseRecordTypes {
		t.AppendRow(table.Row{rt, joinOrDash(records[rt])})
	}
	t.Render()

	if spf := records["SPF"]; len(spf) > 0 {
		panel(w, "SPF (TXT)", strings.Join(spf, "\n"), text.Colors{text.FgGreen})
	} else {
		panel(w, "SPF (TXT)", "No SPF record found", text.Colors{text.FgYellow})
	}

	if dmarc := records["DMARC"]; len(dmarc) > 0 {
		panel(w, "DMARC (TXT)", strings.Join(dmarc, "\n"), text.Colors{text.FgGreen})
	} else {
		panel(w, "DMARC (TXT)", "No DMARC record found at _dmarc."+domain, text.Colors{text.FgYellow})
	}
}

// panel draws a titled single-cell box.
func panel(w io.Writer, title, body string, colors text.Colors) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("%s", title)
	t.Style().Title.Colors = colors
	t.AppendRow(table.Row{colors.Sprint(body)})
	t.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func joinOrDash(vals []string) string {
	if len(vals) == 0 {
		return "-"
	}
	return strings.Join(vals, ", ")
}
