package cmd

import (
	"context"
	"io"

	"mac2switchport/pkg/akips"
	"mac2switchport/pkg/filters"
	"mac2switchport/pkg/logger"
	"mac2switchport/pkg/macaddr"
	"mac2switchport/pkg/output"
)

// runLookup resolves the --mac flag and writes the result to w in the
// requested format. With --raw, the response body bypasses parsing and
// filtering and is printed as a JSON string.
func runLookup(ctx context.Context, client *akips.Client, log *logger.Logger, w io.Writer, opts *rootOptions) error {
	mac, err := macaddr.Normalize(opts.mac)
	if err != nil {
		return err
	}
	log.Debugf("resolving %s", mac)

	if opts.raw {
		body, err := client.LookupRaw(ctx, mac)
		if err != nil {
			return err
		}
		return output.Print(w, body)
	}

	records, err := client.Lookup(ctx, mac)
	if err != nil {
		return err
	}
	log.Debugf("AKIPS returned %d records for %s", len(records), mac)
	records = filters.Apply(records, opts.criteria)

	switch opts.format {
	case "csv":
		return output.WriteCSV(w, records)
	case "table":
		return output.WriteTable(w, records)
	default:
		return output.Print(w, akips.Shape(records))
	}
}
