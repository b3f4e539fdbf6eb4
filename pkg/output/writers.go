// Package output renders lookup results as pretty JSON, CSV, or an aligned
// text table, and classifies broken-pipe write failures.
package output

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"

	"mac2switchport/pkg/akips"
)

// Print writes v as two-space-indented JSON followed by a newline. HTML
// escaping is off so characters like & pass through untouched. This is the
// default output format; v is usually a shaped record value but may be any
// JSON-encodable value, including a raw response string.
func Print(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteCSV writes records in CSV format with headers.
func WriteCSV(w io.Writer, records []akips.PortRecord) error {
	writer := csv.NewWriter(w)

	_ = writer.Write([]string{"MAC", "Vendor", "Switch", "Port", "VLAN", "IPAddress"})
	for _, r := range records {
		_ = writer.Write([]string{r.MAC, r.Vendor, r.Switch, r.Port, r.VLAN, r.IPAddress})
	}
	writer.Flush()
	return writer.Error()
}

// WriteTable writes records in plain text table format with aligned columns.
func WriteTable(w io.Writer, records []akips.PortRecord) error {
	bw := bufio.NewWriter(w)

	if len(records) == 0 {
		fmt.Fprintln(bw, "No results")
		return bw.Flush()
	}

	headers := []string{"MAC", "Vendor", "Switch", "Port", "VLAN", "IPAddress"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, r := range records {
		widths[0] = max(widths[0], len(r.MAC))
		widths[1] = max(widths[1], len(r.Vendor))
		widths[2] = max(widths[2], len(r.Switch))
		widths[3] = max(widths[3], len(r.Port))
		widths[4] = max(widths[4], len(r.VLAN))
		widths[5] = max(widths[5], len(r.IPAddress))
	}

	separator := strings.Repeat("-", sum(widths)+len(widths)*3-1)
	fmt.Fprintln(bw, separator)
	fmt.Fprintln(bw, formatRow(headers, widths))
	fmt.Fprintln(bw, separator)
	for _, r := range records {
		values := []string{r.MAC, r.Vendor, r.Switch, r.Port, r.VLAN, r.IPAddress}
		fmt.Fprintln(bw, formatRow(values, widths))
	}
	fmt.Fprintln(bw, separator)
	return bw.Flush()
}

// IsBrokenPipe reports whether err means the consumer of our output went
// away, as when the tool is piped into head and head exits first.
func IsBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}

// formatRow formats a row of values with column widths for text table output.
func formatRow(values []string, widths []int) string {
	var parts []string
	for i, v := range values {
		parts = append(parts, fmt.Sprintf("%-*s", widths[i], v))
	}
	return strings.Join(parts, " | ")
}

// sum calculates the sum of integers in a slice.
func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// max returns the maximum of two integers.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
