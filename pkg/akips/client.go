// Package akips provides a client for the AKIPS Switch Port Mapper API.
// It queries the api-spm endpoint for a MAC address and parses the
// comma-separated response into port records.
package akips

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Username is the read-only AKIPS account every lookup authenticates as.
const Username = "api-ro"

// ErrRequestFailed is wrapped by lookup failures where no response content
// was available, so callers can classify with errors.Is.
var ErrRequestFailed = errors.New("AKIPS request failed")

// Client is an HTTP client wrapper for the AKIPS Switch Port Mapper API.
type Client struct {
	baseURL  string
	password string
	client   *http.Client
}

// NewClient creates an AKIPS API client. caCert names a PEM bundle used to
// verify the server certificate; when empty, certificate verification is
// disabled, because AKIPS installs commonly serve certificates from a
// private CA. timeout bounds each request; 0 or negative uses 60 seconds.
func NewClient(baseURL, password, caCert string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	tlsConfig := &tls.Config{InsecureSkipVerify: true}
	if caCert != "" {
		pem, err := os.ReadFile(caCert)
		if err != nil {
			return nil, fmt.Errorf("reading CA bundle %s: %v", caCert, err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", caCert)
		}
		tlsConfig = &tls.Config{RootCAs: pool}
	}

	return &Client{
		baseURL:  baseURL,
		password: password,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: tlsConfig,
			},
		},
	}, nil
}

// LookupRaw queries the switch port mapper for a MAC address and returns the
// response body verbatim. mac must already be in colon-separated form.
//
// A response with a non-2xx status and an empty body is reported as an
// error. When the body is non-empty it is returned regardless of status,
// because AKIPS reports lookup problems such as "Can't resolve mac address"
// in the body itself.
func (c *Client) LookupRaw(ctx context.Context, mac string) (string, error) {
	// The api-spm dialect separates query parameters with semicolons.
	// url.Values would join with ampersands and percent-escape the colons
	// in the address, so the query string is assembled by hand.
	fullURL := c.baseURL + "/api-spm?username=" + Username + ";password=" + c.password + ";mac=" + mac

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrRequestFailed, err)
	}
	if resp.StatusCode >= 300 && len(body) == 0 {
		return "", fmt.Errorf("%w: AKIPS API error %d", ErrRequestFailed, resp.StatusCode)
	}
	return string(body), nil
}

// Lookup queries the switch port mapper for a MAC address and parses the
// response into port records. The list is empty when AKIPS has not seen the
// address.
func (c *Client) Lookup(ctx context.Context, mac string) ([]PortRecord, error) {
	body, err := c.LookupRaw(ctx, mac)
	if err != nil {
		return nil, err
	}
	return ParseRecords(body), nil
}
