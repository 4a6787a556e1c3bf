package share

import (
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// NewHTTPClient builds the client used for every backend call.
// proxyURL may be empty.
func NewHTTPClient(timeout time.Duration, proxyURL string) (*http.Client, error) {
	tr := &http.Transport{
		MaxConnsPerHost:       0,
		MaxIdleConns:          0,
		MaxIdleConnsPerHost:   64,
		ResponseHeaderTimeout: 10 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		IdleConnTimeout:       30 * time.Second,
		ExpectContinueTimeout: 30 * time.Second,
	}

	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, errors.Wrapf(err, "proxy url %q", proxyURL)
		}
		tr.Proxy = http.ProxyURL(u)
	}

	if timeout <= 0 {
		timeout = time.Minute
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: tr,
	}, nil
}
