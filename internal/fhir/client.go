// Package fhir is a thin REST client for a HealthLake datastore's FHIR
// endpoint, signing each request with SigV4.
package fhir

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
)

const signingService = "healthlake"

// Client issues signed requests against one datastore.
type Client struct {
	endpoint    string
	datastoreID string
	region      string
	creds       aws.CredentialsProvider
	signer      *v4.Signer
	httpClient  *http.Client
}

// NewClient builds a client for the datastore's regional endpoint. An
// empty endpoint defaults to the service's public regional URL.
func NewClient(cfg aws.Config, datastoreID, endpoint string) *Client {
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://healthlake.%s.amazonaws.com", cfg.Region)
	}
	return &Client{
		endpoint:    strings.TrimSuffix(endpoint, "/"),
		datastoreID: datastoreID,
		region:      cfg.Region,
		creds:       cfg.Credentials,
		signer:      v4.NewSigner(),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Send issues one FHIR request. resourceID may be empty for type-level
// operations (e.g. POST of a new resource, GET of a search). The
// response body is returned as-is; non-2xx statuses are errors carrying
// the service's message verbatim.
func (c *Client) Send(ctx context.Context, method, resourceType, resourceID string, payload []byte) ([]byte, error) {
	url := fmt.Sprintf("%s/datastore/%s/r4/%s", c.endpoint, c.datastoreID, resourceType)
	if resourceID != "" {
		url += "/" + resourceID
	}

	var body io.Reader
	if len(payload) > 0 {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if len(payload) > 0 {
		req.Header.Set("Content-Type", "application/fhir+json")
	}

	creds, err := c.creds.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve credentials: %w", err)
	}

	sum := sha256.Sum256(payload)
	payloadHash := hex.EncodeToString(sum[:])
	if err := c.signer.SignHTTP(ctx, creds, req, payloadHash, signingService, c.region, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: status %d: %s", req.Method, url, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return respBody, nil
}

// SetHTTPClient overrides the transport, for tests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}
