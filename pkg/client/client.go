// The client package implements a client for the crackcrypt lookup
// api. Each lookup is a single synchronous POST request, there are no
// retries.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"crackcrypt.com/crackcrypt-go/pkg/api"
	"crackcrypt.com/crackcrypt-go/pkg/log"
)

const defaultUserAgent = "crackcrypt-go lookup"

type Config struct {
	// Empty user agent implies a default user agent string.
	UserAgent string
	// Base url of the api, without the endpoint name. Empty
	// implies api.DefaultURL.
	URL string

	// HTTPClient specifies the HTTP client to use when making requests to the service.
	// If nil, a default client is created.
	HTTPClient *http.Client
}

func (c Config) withDefaults() Config {
	res := c
	if res.UserAgent == "" {
		res.UserAgent = defaultUserAgent
	}
	if res.URL == "" {
		res.URL = api.DefaultURL
	}
	if res.HTTPClient == nil {
		res.HTTPClient = &http.Client{}
	}
	return res
}

func New(cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		config: cfg,
		client: cfg.HTTPClient,
	}
}

type Client struct {
	config Config
	client *http.Client
}

func (cli *Client) Lookup(ctx context.Context, req api.LookupRequest) (rsp api.LookupResponse, err error) {
	body, err := json.Marshal(&req)
	if err != nil {
		return api.LookupResponse{}, err
	}
	err = cli.post(ctx, api.EndpointLookup.Path(cli.config.URL), bytes.NewReader(body),
		func(r io.Reader) error {
			if err := json.NewDecoder(r).Decode(&rsp); err != nil {
				return fmt.Errorf("invalid lookup response: %w", err)
			}
			return nil
		})
	return
}

func (cli *Client) post(ctx context.Context, url string, requestBody io.Reader, parseResponse func(io.Reader) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, requestBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if err := cli.do(req, parseResponse); err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, url, err)
	}
	return nil
}

func (cli *Client) do(req *http.Request, parseBody func(io.Reader) error) error {
	req.Header.Set("User-Agent", cli.config.UserAgent)

	log.Debug("sending %s request to %s", req.Method, req.URL)
	rsp, err := cli.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer rsp.Body.Close()
	log.Debug("response status %d from %s", rsp.StatusCode, req.URL)

	if isSuccess(rsp.StatusCode) && parseBody != nil {
		return parseBody(rsp.Body)
	}
	return responseErrorHandling(rsp)
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

func responseErrorHandling(rsp *http.Response) error {
	b, err := io.ReadAll(rsp.Body)
	if err != nil {
		err := fmt.Errorf("reading server response failed: %w", err)

		if isSuccess(rsp.StatusCode) {
			return err
		}
		return api.NewError(rsp.StatusCode, err)
	}
	if !isSuccess(rsp.StatusCode) {
		return api.NewError(rsp.StatusCode, fmt.Errorf("server: %q", b))
	}
	if len(b) > 0 {
		return fmt.Errorf("unexpected server response (status %d): %q", rsp.StatusCode, b)
	}
	return nil
}
