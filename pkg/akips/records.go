package akips

import (
	"strings"

	"mac2switchport/pkg/macaddr"
)

// PortRecord describes one switch port where AKIPS has seen a MAC address.
// Field order matters: it is the key order of the JSON the tool prints.
type PortRecord struct {
	MAC       string `json:"mac"`
	Vendor    string `json:"vendor"`
	Switch    string `json:"switch"`
	Port      string `json:"port"`
	VLAN      string `json:"vlan"`
	IPAddress string `json:"ipaddress"`
}

// ParseRecords extracts port records from an api-spm response body. Each
// line holding exactly six comma-separated fields becomes one record, in
// the order mac, vendor, switch, port, vlan, ipaddress; the MAC field is
// re-normalized to canonical form. Every other line, including error text
// such as "Can't resolve mac address ...", is skipped. The result is never
// nil: an unresolvable MAC yields an empty list.
func ParseRecords(body string) []PortRecord {
	records := []PortRecord{}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSuffix(line, "\r")
		fields := strings.Split(line, ",")
		if len(fields) != 6 {
			continue
		}
		mac, err := macaddr.Normalize(fields[0])
		if err != nil {
			continue
		}
		records = append(records, PortRecord{
			MAC:       mac,
			Vendor:    fields[1],
			Switch:    fields[2],
			Port:      fields[3],
			VLAN:      fields[4],
			IPAddress: fields[5],
		})
	}
	return records
}

// Shape reduces a record list to the value the tool prints: a lone record
// is unwrapped to the record itself, anything else stays a list. A nil list
// shapes to an empty one so the output is [] rather than null.
func Shape(records []PortRecord) interface{} {
	if len(records) == 1 {
		return records[0]
	}
	if records == nil {
		return []PortRecord{}
	}
	return records
}
