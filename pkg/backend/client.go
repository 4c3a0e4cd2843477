// Package backend implements the HTTP client for the appdeck backend, which
// owns apps, variants, and their container images. Every operation issues
// exactly one blocking request and maps failures onto RequestError or
// BuildError; there are no retries and no state held between calls.
package backend

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/appdeck-hq/appdeck-client/internal/logger"
	"github.com/appdeck-hq/appdeck-client/pkg/httpclient"
)

const (
	defaultRequestTimeout = 600 * time.Second
	defaultUploadTimeout  = 1200 * time.Second
)

// Options configures a Client. URLSuffix is required and comes from process
// configuration (see internal/config); the client itself never reads the
// environment.
type Options struct {
	URLSuffix      string
	RequestTimeout time.Duration
	UploadTimeout  time.Duration

	// HTTP and Upload override the resty-backed transports. Mostly for tests.
	HTTP   httpclient.Client
	Upload httpclient.Client

	Log logger.Logger
}

// Client issues requests against one backend host. It holds no mutable state,
// so a single value is safe for concurrent use; ordering across calls is
// whatever the caller imposes.
type Client struct {
	host   string
	suffix string
	http   httpclient.Client
	upload httpclient.Client
	log    logger.Logger
}

// New builds a Client for the given backend host.
func New(host string, opts Options) (*Client, error) {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		return nil, fmt.Errorf("backend host must not be empty")
	}
	suffix := strings.Trim(strings.TrimSpace(opts.URLSuffix), "/")
	if suffix == "" {
		return nil, fmt.Errorf("backend URL suffix must not be empty")
	}

	requestTimeout := opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	uploadTimeout := opts.UploadTimeout
	if uploadTimeout <= 0 {
		uploadTimeout = defaultUploadTimeout
	}

	httpc := opts.HTTP
	if httpc == nil {
		httpc = httpclient.NewRestyClient(requestTimeout)
	}
	uploadc := opts.Upload
	if uploadc == nil {
		uploadc = httpclient.NewRestyClient(uploadTimeout)
	}

	log := opts.Log
	if log == nil {
		log = &logger.NopLogger{}
	}

	return &Client{
		host:   host,
		suffix: suffix,
		http:   httpc,
		upload: uploadc,
		log:    log,
	}, nil
}

// Host returns the backend host this client targets.
func (c *Client) Host() string { return c.host }

// do runs one request, translating transport failures and non-200 statuses
// into *RequestError so callers see a single error kind.
func (c *Client) do(op, url string, call func() (httpclient.Response, error)) (httpclient.Response, error) {
	c.log.Debugw("backend request", "op", op, "url", url)

	resp, err := call()
	if err != nil {
		return nil, newTransportError(op, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, newStatusError(op, resp.StatusCode(), resp.Body())
	}
	return resp, nil
}
