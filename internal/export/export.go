// Package export serializes a recon result to a file. Existing files
// are overwritten; write failures are returned to the caller, which
// treats them as fatal.
package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"

	"recon/internal/model"
)

// WriteJSON writes the result pretty-printed with 2-space indent.
// Non-ASCII text passes through unescaped.
func WriteJSON(res model.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes the flat Section/Key/Value table: WHOIS summary rows
// first, then one row per DNS value (or a dash row for empty types).
func WriteCSV(res model.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(csvRows(res)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func csvRows(res model.Result) [][]string {
	rows := [][]string{{"Section", "Key", "Value"}}

	who := res.Whois
	if who.Error != "" {
		rows = append(rows, []string{"WHOIS", "error", who.Error})
	} else {
		rows = append(rows,
			[]string{"WHOIS", "domain", who.Domain},
			[]string{"WHOIS", "registrar", who.Registrar},
			[]string{"WHOIS", "creation_date", who.CreationDate},
			[]string{"WHOIS", "updated_date", who.UpdatedDate},
			[]string{"WHOIS", "expiration_date", who.ExpirationDate},
			[]string{"WHOIS", "name_servers", strings.Join(who.NameServers, ";")},
			[]string{"WHOIS", "status", strings.Join(who.Status, ";")},
		)
	}

	for _, rt := range model.RecordOrder {
		vals, ok := res.DNS[rt]
		if !ok {
			continue
		}
		if len(vals) == 0 {
			rows = append(rows, []string{"DNS", rt, "-"})
			continue
		}
		for _, v := range vals {
			rows = append(rows, []string{"DNS", rt, v})
		}
	}

	return rows
}
