package model

import "encoding/json"

// BaseRecordTypes is the query and render order for the DNS table.
var BaseRecordTypes = []string{"A", "AAAA", "MX", "TXT", "NS", "CNAME"}

// RecordOrder is BaseRecordTypes plus the derived keys, in export order.
var RecordOrder = []string{"A", "AAAA", "MX", "TXT", "NS", "CNAME", "SPF", "DMARC"}

// DNSRecords maps a record-type tag to its textual values. An empty slice
// means no records of that type; sentinel entries ("NXDOMAIN",
// "DNS error: ...") are surfaced as values, not as errors.
type DNSRecords map[string][]string

// WhoisRecord is the normalized WHOIS summary for one domain. When Error
// is set the other fields are zero and the record serializes as a single
// {"error": ...} object.
type WhoisRecord struct {
	Domain         string
	Registrar      string
	CreationDate   string
	UpdatedDate    string
	ExpirationDate string
	NameServers    []string
	Status         []string
	Raw            string
	Error          string
}

type whoisRecordJSON struct {
	Domain         string   `json:"domain"`
	Registrar      string   `json:"registrar,omitempty"`
	CreationDate   string   `json:"creation_date,omitempty"`
	UpdatedDate    string   `json:"updated_date,omitempty"`
	ExpirationDate string   `json:"expiration_date,omitempty"`
	NameServers    []string `json:"name_servers"`
	Status         []string `json:"status"`
	Raw            string   `json:"raw"`
	Error          string   `json:"error,omitempty"`
}

func (w WhoisRecord) MarshalJSON() ([]byte, error) {
	if w.Error != "" {
		return json.Marshal(map[string]string{"error": w.Error})
	}
	return json.Marshal(whoisRecordJSON{
		Domain:         w.Domain,
		Registrar:      w.Registrar,
		CreationDate:   w.CreationDate,
		UpdatedDate:    w.UpdatedDate,
		ExpirationDate: w.ExpirationDate,
		NameServers:    w.NameServers,
		Status:         w.Status,
		Raw:            w.Raw,
	})
}

func (w *WhoisRecord) UnmarshalJSON(data []byte) error {
	var aux whoisRecordJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*w = WhoisRecord{
		Domain:         aux.Domain,
		Registrar:      aux.Registrar,
		CreationDate:   aux.CreationDate,
		UpdatedDate:    aux.UpdatedDate,
		ExpirationDate: aux.ExpirationDate,
		NameServers:    aux.NameServers,
		Status:         aux.Status,
		Raw:            aux.Raw,
		Error:          aux.Error,
	}
	return nil
}

// Result is the unit handed to the exporters and the HTTP API.
type Result struct {
	Domain       string      `json:"domain"`
	Whois        WhoisRecord `json:"whois"`
	DNS          DNSRecords  `json:"dns"`
	TimestampUTC string      `json:"timestamp_utc"`
}

// Snapshot is the change-detection view of a Result: everything except
// the timestamp, which differs on every run.
func (r Result) Snapshot() string {
	b, _ := json.MarshalIndent(struct {
		Whois WhoisRecord `json:"whois"`
		DNS   DNSRecords  `json:"dns"`
	}{r.Whois, r.DNS}, "", "  ")
	return string(b)
}

type HistoryEntry struct {
	Timestamp string `json:"timestamp"`
	Snapshot  string `json:"snapshot"`
}
