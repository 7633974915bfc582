package m3uparser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultSource is the iptv-org playlist of Chinese channels.
	DefaultSource = "https://iptv-org.github.io/iptv/countries/cn.m3u"
	// DefaultUserAgent is sent with the playlist fetch and every probe.
	DefaultUserAgent = "Mozilla/5.0 (compatible; ChinaIPTVFetcher/1.0)"
	// DefaultTimeout bounds the playlist fetch and each probe.
	DefaultTimeout = 7 * time.Second
)

// ErrHTTPStatus is returned when the playlist source answers with a non-2xx status.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// Fetch - Returns the playlist text at source, which is either an
// http(s) URL or a local file path.
func Fetch(ctx context.Context, client *http.Client, source, userAgent string, timeout time.Duration) (string, error) {
	if !isHTTPURL(source) {
		log.Debugf("Reading m3u file: %s", source)
		body, err := os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", source, err)
		}
		return string(body), nil
	}

	log.Debugf("Fetching m3u URL: %s", source)
	resp, cancel, err := get(ctx, client, source, userAgent, timeout)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", source, err)
	}
	defer cancel()
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: %w: HTTP %d", source, ErrHTTPStatus, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch %s: read body: %w", source, err)
	}
	return string(body), nil
}

// get - GET request bounded by timeout. The caller closes the body and then
// calls cancel.
func get(ctx context.Context, client *http.Client, URL string, userAgent string, timeout time.Duration) (*http.Response, context.CancelFunc, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	resp, err := client.Do(req)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return resp, cancel, nil
}
