// Package httpclient fetches remote dataset files over HTTP(S).
//
// The Client applies default headers, a request timeout and optional retry
// with exponential backoff, and classifies non-2xx responses into typed
// errors so callers can tell retryable failures (timeouts, 5xx, 429) from
// permanent ones (404, 4xx).
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    Timeout: 5 * time.Minute,
//	    Retry:   httpclient.DefaultRetryConfig(),
//	})
//
//	stream, err := client.Open(ctx, "https://example.org/cora.npz")
//	defer stream.Close()
//	io.Copy(dst, stream.Body)
package httpclient
