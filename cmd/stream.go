package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"mac2switchport/pkg/akips"
	"mac2switchport/pkg/batch"
	"mac2switchport/pkg/logger"
	"mac2switchport/pkg/macaddr"
	"mac2switchport/pkg/output"
)

// runStream reads queries from r until EOF and answers each input line with
// one JSON document on w. The whole stream is read and classified first:
// either every non-empty line is a JSON query document, or every line is a
// bare MAC address.
//
// A failure to resolve one address (bad format, network error) is logged
// and that address skipped; the rest of the stream continues. A JSON line
// whose structure is wrong is fatal. A broken output pipe ends the stream
// quietly, as when a downstream consumer exits early.
func runStream(ctx context.Context, client *akips.Client, log *logger.Logger, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading stdin: %v", err)
	}
	input := string(data)

	if batch.Classify(input) == batch.ModeJSON {
		log.Debugf("stdin classified as JSON queries")
		return streamJSON(ctx, client, log, input, w)
	}
	log.Debugf("stdin classified as bare MAC lines")
	return streamBare(ctx, client, log, input, w)
}

// streamJSON answers each JSON query line with an array holding the shaped
// result of every address the line asked for, in order.
func streamJSON(ctx context.Context, client *akips.Client, log *logger.Logger, input string, w io.Writer) error {
	for _, line := range strings.Split(input, "\n") {
		if len(line) == 0 {
			continue
		}
		macs, ok, err := batch.ParseLine(line)
		if err != nil {
			return fmt.Errorf("stream input: %v", err)
		}
		if !ok {
			log.Debugf("skipping non-query JSON line: %s", line)
			continue
		}

		results := make([]interface{}, 0, len(macs))
		for _, raw := range macs {
			shaped, err := resolveShaped(ctx, client, raw)
			if err != nil {
				log.Warnf("skipping %q: %v", raw, err)
				continue
			}
			results = append(results, shaped)
		}

		if err := output.Print(w, results); err != nil {
			if output.IsBrokenPipe(err) {
				log.Debugf("output pipe closed, stopping")
				return nil
			}
			return err
		}
	}
	return nil
}

// streamBare answers each line with the shaped result of that one address.
func streamBare(ctx context.Context, client *akips.Client, log *logger.Logger, input string, w io.Writer) error {
	for _, line := range strings.Split(input, "\n") {
		if len(line) == 0 {
			continue
		}
		shaped, err := resolveShaped(ctx, client, line)
		if err != nil {
			log.Warnf("skipping %q: %v", line, err)
			continue
		}
		if err := output.Print(w, shaped); err != nil {
			if output.IsBrokenPipe(err) {
				log.Debugf("output pipe closed, stopping")
				return nil
			}
			return err
		}
	}
	return nil
}

// resolveShaped normalizes one raw MAC address, resolves it, and shapes the
// records for output.
func resolveShaped(ctx context.Context, client *akips.Client, raw string) (interface{}, error) {
	mac, err := macaddr.Normalize(raw)
	if err != nil {
		return nil, err
	}
	records, err := client.Lookup(ctx, mac)
	if err != nil {
		return nil, err
	}
	return akips.Shape(records), nil
}
