package eodhd

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/stockdata/date"
)

// diskCache is an http.RoundTripper that keeps successful responses in dir
// until the end of the current period.
type diskCache struct {
	next   http.RoundTripper
	dir    string
	period date.Period
}

// file returns the cache file of a request. The current period is part of the
// key, so entries of a past period are never read again.
func (c *diskCache) file(req *http.Request) string {
	key := date.Today().PeriodKey(c.period) + " " + req.Method + " " + req.URL.String()
	return filepath.Join(c.dir, fmt.Sprintf("eodhd-%s-%x", c.period, sha1.Sum([]byte(key))))
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	file := c.file(req)
	if content, err := os.ReadFile(file); err == nil {
		if resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req); err == nil {
			return resp, nil
		}
		log.Printf("ignoring invalid cache entry %s", file)
	}

	resp, err := c.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	// DumpResponse replaces the body with an in memory copy.
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		log.Printf("cannot cache %v%v: %v", req.URL.Host, req.URL.Path, err)
		return resp, nil
	}
	if err := os.WriteFile(file, content, 0o644); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// newCachingClient returns an http.Client that caches responses in dir until the end of the current period.
func newCachingClient(dir string, period date.Period) *http.Client {
	return &http.Client{Transport: &diskCache{next: http.DefaultTransport, dir: dir, period: period}}
}

// get performs an HTTP GET request and returns the response body.
//
// Any status but 200 is an error.
func get(ctx context.Context, client *http.Client, addr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// jwget is get followed by a json decoding of the body into data.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	content, err := get(ctx, client, addr)
	if err != nil {
		return err
	}
	return json.Unmarshal(content, data)
}
