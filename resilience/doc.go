// Package resilience retries failed operations with exponential backoff.
//
// Remote dataset files are fetched through Retry so transient transport
// failures (timeouts, connection resets, 5xx responses) do not abort a load:
//
//	cfg := resilience.DefaultRetryConfig()
//	body, err := resilience.Retry(ctx, cfg, func() ([]byte, error) {
//	    return fetch(ctx, url)
//	})
package resilience
