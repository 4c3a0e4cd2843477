package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified timeout.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	return c
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	return r.execute(ctx, http.MethodGet, url, nil, headers)
}

// Post performs an HTTP POST request with a JSON-encoded body.
func (r *RestyClient) Post(ctx context.Context, url string, body any, headers map[string]string) (Response, error) {
	return r.execute(ctx, http.MethodPost, url, body, headers)
}

// Put performs an HTTP PUT request with a JSON-encoded body.
func (r *RestyClient) Put(ctx context.Context, url string, body any, headers map[string]string) (Response, error) {
	return r.execute(ctx, http.MethodPut, url, body, headers)
}

// Delete performs an HTTP DELETE request.
func (r *RestyClient) Delete(ctx context.Context, url string, headers map[string]string) (Response, error) {
	return r.execute(ctx, http.MethodDelete, url, nil, headers)
}

// UploadFile performs a multipart POST streaming a single file field from the
// given reader. The caller owns the reader and closes it after the call returns.
func (r *RestyClient) UploadFile(ctx context.Context, url, field, filename string, file io.Reader) (Response, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetFileReader(field, filename, file).
		Post(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

func (r *RestyClient) execute(ctx context.Context, method, url string, body any, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
	}
	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
