package httpclient

import (
	"io"
)

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method. Defaults to GET.
	Method string
	// Path is appended to the client's BaseURL. Can be a full URL.
	Path string
	// Headers are request-specific headers (merged with client defaults).
	Headers map[string]string
}

// Response is a fully read HTTP response.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StreamResponse is an HTTP response whose body has not been read yet.
// The caller must Close it.
type StreamResponse struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// ContentLength is the declared body size, or -1 when unknown.
	ContentLength int64
	// Body is the streaming response body.
	Body io.ReadCloser
}

// Close releases the response body.
func (r *StreamResponse) Close() error {
	if r.Body != nil {
		return r.Body.Close()
	}
	return nil
}
