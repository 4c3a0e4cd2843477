package httpclient

import (
	"context"
	"io"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// JSON verbs marshal body as application/json; UploadFile streams a single
// multipart file field.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
	Post(ctx context.Context, url string, body any, headers map[string]string) (Response, error)
	Put(ctx context.Context, url string, body any, headers map[string]string) (Response, error)
	Delete(ctx context.Context, url string, headers map[string]string) (Response, error)
	UploadFile(ctx context.Context, url, field, filename string, file io.Reader) (Response, error)
}
