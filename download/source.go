package download

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kbukum/gli/errors"
	"github.com/kbukum/gli/storage/s3"
)

// Source schemes.
const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
	SchemeS3    = "s3"
	SchemeFile  = "file"
)

// entry is one urls.json line.
type entry struct {
	File string
	URL  string
}

// readManifest parses urls.json in dir. A missing manifest yields no
// entries.
func readManifest(dir string) ([]entry, error) {
	p := filepath.Join(dir, URLsFile)
	raw, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Internal(err)
	}

	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.InvalidFormat(p, "json object of file name to url").WithCause(err)
	}

	entries := make([]entry, 0, len(m))
	for file, u := range m {
		if file == "" || file != filepath.Base(file) || file == "." || file == ".." {
			return nil, errors.InvalidInput("file", fmt.Sprintf("%q is not a plain file name", file)).WithDetail("path", p)
		}
		entries = append(entries, entry{File: file, URL: u})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].File < entries[j].File })
	return entries, nil
}

func scheme(raw string) string {
	if i := strings.Index(raw, "://"); i > 0 {
		return strings.ToLower(raw[:i])
	}
	return ""
}

// open returns the body of the source at raw.
func (d *Downloader) open(ctx context.Context, raw string) (io.ReadCloser, error) {
	switch scheme(raw) {
	case SchemeHTTP, SchemeHTTPS:
		resp, err := d.http.Open(ctx, raw)
		if err != nil {
			return nil, err
		}
		return resp.Body, nil
	case SchemeS3:
		bucket, key, err := s3.ParseURL(raw)
		if err != nil {
			return nil, errors.InvalidInput("url", err.Error())
		}
		src, err := d.bucket(ctx, bucket)
		if err != nil {
			return nil, errors.ConnectionFailed("s3://" + bucket).WithCause(err)
		}
		return src.Download(ctx, key)
	case SchemeFile:
		u, err := url.Parse(raw)
		if err != nil {
			return nil, errors.InvalidInput("url", err.Error())
		}
		f, err := os.Open(u.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.FileNotFound(u.Path)
			}
			return nil, err
		}
		return f, nil
	default:
		return nil, errors.InvalidInput("url", fmt.Sprintf("unsupported source %q", raw))
	}
}

// countingReader counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
