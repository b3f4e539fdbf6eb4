package cmd

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"mac2switchport/pkg/akips"
	"mac2switchport/pkg/logger"
)

const secondRecordBody = "66:77:88:99:aa:bb,Other Vendor,edge-sw7,Gi0/1,cameras,10.9.8.7\n"

func streamClient(t *testing.T, baseURL string) *akips.Client {
	t.Helper()
	client, err := akips.NewClient(baseURL, "testpass", "", 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	return client
}

// --- Bare MAC lines

func TestStream_BareLines(t *testing.T) {
	startAKIPS(t, map[string]string{"00:11:22:33:44:55": singleRecordBody})

	// One document per line, unresolved addresses included as empty lists.
	got, err := runCLI(t, "00:11:22:33:44:55\nf8:66:f2:1d:39:f5\n")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := singleRecordJSON + "[]\n"
	if got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestStream_EmptyInput(t *testing.T) {
	startAKIPS(t, nil)

	got, err := runCLI(t, "")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got != "" {
		t.Errorf("stdout = %q, want empty", got)
	}
}

func TestStream_MixedInputFallsBackToBare(t *testing.T) {
	// A non-JSON first line demotes the whole stream to bare mode, so the
	// JSON query on the second line is treated as one malformed address
	// and skipped.
	startAKIPS(t, map[string]string{"00:11:22:33:44:55": singleRecordBody})

	input := "00:11:22:33:44:55\n" + `{"mac": ["66:77:88:99:aa:bb"]}` + "\n"
	got, err := runCLI(t, input)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got != singleRecordJSON {
		t.Errorf("stdout = %q, want %q", got, singleRecordJSON)
	}
}

// --- JSON query lines

func TestStream_JSONObjectBatch(t *testing.T) {
	startAKIPS(t, map[string]string{
		"00:11:22:33:44:55": singleRecordBody,
		"66:77:88:99:aa:bb": secondRecordBody,
	})

	// A batch answers with a single array holding every result in order.
	got, err := runCLI(t, `{"mac": ["00:11:22:33:44:55", "66:77:88:99:aa:bb"]}`+"\n")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := `[
  {
    "mac": "00:11:22:33:44:55",
    "vendor": "Example Vendor",
    "switch": "core-sw1",
    "port": "Gi0/23",
    "vlan": "printers",
    "ipaddress": "10.1.2.3"
  },
  {
    "mac": "66:77:88:99:aa:bb",
    "vendor": "Other Vendor",
    "switch": "edge-sw7",
    "port": "Gi0/1",
    "vlan": "cameras",
    "ipaddress": "10.9.8.7"
  }
]
`
	if got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestStream_JSONObjectSingleString(t *testing.T) {
	startAKIPS(t, map[string]string{"00:11:22:33:44:55": singleRecordBody})

	got, err := runCLI(t, `{"mac": "00:11:22:33:44:55"}`+"\n")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(got, "[\n  {\n") || !strings.Contains(got, `"core-sw1"`) {
		t.Errorf("single-address query should still answer with an array: %q", got)
	}
}

func TestStream_JSONArrayOfObjects(t *testing.T) {
	startAKIPS(t, map[string]string{
		"00:11:22:33:44:55": singleRecordBody,
		"66:77:88:99:aa:bb": secondRecordBody,
	})

	got, err := runCLI(t, `[{"mac": "00:11:22:33:44:55"}, {"mac": "66:77:88:99:aa:bb"}]`+"\n")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(got, "[\n") {
		t.Errorf("stdout = %q, want one array", got)
	}
	if !strings.Contains(got, `"core-sw1"`) || !strings.Contains(got, `"edge-sw7"`) {
		t.Errorf("stdout missing results: %q", got)
	}
	if n := strings.Count(got, "]\n"); n != 1 {
		t.Errorf("want exactly one top-level array, got %d closers in %q", n, got)
	}
}

func TestStream_NestedShapes(t *testing.T) {
	startAKIPS(t, map[string]string{"66:77:88:99:aa:bb": secondRecordBody})

	// An unresolved address occupies its slot as an empty list.
	got, err := runCLI(t, `{"mac": ["f8:66:f2:1d:39:f5", "66:77:88:99:aa:bb"]}`+"\n")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(got, "[\n  [],\n  {\n") {
		t.Errorf("stdout = %q, want nested empty list first", got)
	}
	if !strings.Contains(got, `"edge-sw7"`) {
		t.Errorf("stdout missing resolved record: %q", got)
	}
}

func TestStream_NonQueryJSONSkipped(t *testing.T) {
	startAKIPS(t, nil)

	got, err := runCLI(t, "42\ntrue\n\"just a string\"\n")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got != "" {
		t.Errorf("stdout = %q, want empty", got)
	}
}

func TestStream_StructuralErrorIsFatal(t *testing.T) {
	startAKIPS(t, map[string]string{"00:11:22:33:44:55": singleRecordBody})

	for _, input := range []string{
		`{"address": "00:11:22:33:44:55"}`,
		`{"mac": 42}`,
		`[{"mac": "00:11:22:33:44:55"}, {"host": "printer"}]`,
	} {
		_, err := runCLI(t, input+"\n")
		if err == nil {
			t.Errorf("Execute() expected error for %s", input)
			continue
		}
		if !strings.Contains(err.Error(), "stream input") {
			t.Errorf("Execute() error for %s = %v", input, err)
		}
	}
}

// --- Resolution failures and output errors

func TestRunStream_SkipsUnresolvable(t *testing.T) {
	srv := startAKIPS(t, map[string]string{"00:11:22:33:44:55": singleRecordBody})
	client := streamClient(t, srv.URL)

	var out, logs bytes.Buffer
	log := logger.NewWriter(&logs, logger.LevelWarning)
	input := "not-a-mac\n00:11:22:33:44:55\n"
	if err := runStream(context.Background(), client, log, strings.NewReader(input), &out); err != nil {
		t.Fatalf("runStream() error = %v", err)
	}
	if out.String() != singleRecordJSON {
		t.Errorf("stdout = %q, want %q", out.String(), singleRecordJSON)
	}
	if !strings.Contains(logs.String(), "WARNING") || !strings.Contains(logs.String(), `skipping "not-a-mac"`) {
		t.Errorf("log = %q, want a skip warning", logs.String())
	}
}

func TestRunStream_SkipsOnNetworkError(t *testing.T) {
	srv := startAKIPS(t, nil)
	baseURL := srv.URL
	srv.Close()
	client := streamClient(t, baseURL)

	var out, logs bytes.Buffer
	log := logger.NewWriter(&logs, logger.LevelWarning)
	if err := runStream(context.Background(), client, log, strings.NewReader("00:11:22:33:44:55\n"), &out); err != nil {
		t.Fatalf("runStream() error = %v", err)
	}
	if out.String() != "" {
		t.Errorf("stdout = %q, want empty", out.String())
	}
	if !strings.Contains(logs.String(), "WARNING") {
		t.Errorf("log = %q, want a skip warning", logs.String())
	}
}

func TestRunStream_BrokenPipeEndsQuietly(t *testing.T) {
	srv := startAKIPS(t, map[string]string{"00:11:22:33:44:55": singleRecordBody})
	client := streamClient(t, srv.URL)

	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	pr.Close()
	defer pw.Close()

	log := logger.NewWriter(&bytes.Buffer{}, logger.LevelError)
	input := "00:11:22:33:44:55\n00:11:22:33:44:55\n"
	if err := runStream(context.Background(), client, log, strings.NewReader(input), pw); err != nil {
		t.Errorf("runStream() error = %v, want nil on broken pipe", err)
	}
}
