package backend

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/json-iterator/go/extra"
	"github.com/pkg/errors"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	bytBufPool = sync.Pool{
		New: func() interface{} {
			buf := new(bytes.Buffer)
			buf.Grow(16 * 1024)
			return buf
		},
	}
)

func init() {
	// numbers arrive as strings or nulls from some endpoints
	extra.RegisterFuzzyDecoders()
}

// Client talks to the raid-log analytics backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, query url.Values, respData interface{}) error {
	urlStr := c.baseURL + path
	if len(query) > 0 {
		urlStr += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{URL: urlStr, Err: errors.WithStack(err)}
	}
	defer resp.Body.Close()

	buf := bytBufPool.Get().(*bytes.Buffer)
	defer bytBufPool.Put(buf)

	buf.Reset()
	_, err = io.Copy(buf, resp.Body)
	if err != nil {
		return &NetworkError{URL: urlStr, StatusCode: resp.StatusCode, Err: errors.WithStack(err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorPayload
		if json.Unmarshal(buf.Bytes(), &payload) == nil && payload.Error != "" {
			return &BackendError{Message: payload.Error, StatusCode: resp.StatusCode}
		}
		return &NetworkError{
			URL:        urlStr,
			StatusCode: resp.StatusCode,
			Err:        errors.Errorf("unexpected status %s", resp.Status),
		}
	}

	err = json.Unmarshal(buf.Bytes(), respData)
	if err != nil {
		return &NetworkError{URL: urlStr, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "decode response")}
	}

	return nil
}

func reportPath(endpoint, code string) string {
	return "/api/" + endpoint + "/" + url.PathEscape(code)
}

// fightQuery builds the optional fight_ids filter. An empty or "all" selection means the whole report.
func fightQuery(fightIDs string) url.Values {
	if fightIDs == "" || fightIDs == "all" {
		return nil
	}
	return url.Values{"fight_ids": []string{fightIDs}}
}
