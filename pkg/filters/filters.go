// Package filters narrows port record lists by switch, port, and VLAN.
package filters

import (
	"strings"

	"mac2switchport/pkg/akips"
)

// Criteria holds the optional record filters from the command line. Empty
// fields match everything.
type Criteria struct {
	Switch string
	Port   string
	VLAN   string
}

// Empty reports whether no filter is set.
func (c Criteria) Empty() bool {
	return c.Switch == "" && c.Port == "" && c.VLAN == ""
}

// Apply returns the records satisfying every set filter. The result is never
// nil, so a fully filtered-out lookup still prints as an empty list.
func Apply(records []akips.PortRecord, c Criteria) []akips.PortRecord {
	if c.Empty() {
		return records
	}
	filtered := []akips.PortRecord{}
	for _, r := range records {
		if Matches(r, c) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Matches reports whether a single record satisfies every set filter.
func Matches(r akips.PortRecord, c Criteria) bool {
	if c.Switch != "" && !MatchesSwitchFilter(r.Switch, c.Switch) {
		return false
	}
	if c.Port != "" && !MatchesPortFilter(r.Port, c.Port) {
		return false
	}
	if c.VLAN != "" && !MatchesVLANFilter(r.VLAN, c.VLAN) {
		return false
	}
	return true
}

// MatchesSwitchFilter checks if a switch name matches the filter (case-insensitive substring).
func MatchesSwitchFilter(name, filter string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}

// MatchesPortFilter checks if a port matches the filter.
// The filter can be an exact match or a substring match.
func MatchesPortFilter(port, filter string) bool {
	if port == filter {
		return true
	}
	return strings.Contains(port, filter)
}

// MatchesVLANFilter checks if a VLAN name or number matches the filter
// (case-insensitive substring).
func MatchesVLANFilter(vlan, filter string) bool {
	return strings.Contains(strings.ToLower(vlan), strings.ToLower(filter))
}
