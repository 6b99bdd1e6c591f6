package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// snippet is one image request: a text rendered with extra tracking.
type snippet struct {
	text    string
	spacing int
}

// query builds the request URL for s.
func (b *Backend) query(s snippet, size int) string {
	v := url.Values{}
	v.Set("rt", s.text)
	v.Set("rs", strconv.Itoa(size))
	v.Set("w", strconv.Itoa(b.cfg.width))
	v.Set("fg", "000000")
	v.Set("bg", "FFFFFF")
	v.Set("t", "o")
	v.Set("sc", "1")
	v.Set("userLang", b.cfg.language.String())
	v.Set("render_mode", "new")
	v.Set("tr", strconv.Itoa(s.spacing))
	return b.endpoint + "?" + v.Encode()
}

// fetch requests one snippet image and returns the response body.
func (b *Backend) fetch(ctx context.Context, s snippet, size int) ([]byte, error) {
	u := b.query(s, size)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, &RequestError{Text: s.text, Err: err}
	}

	b.logger().Debug("remote request", "text", s.text, "spacing", s.spacing, "url", u)
	resp, err := b.cfg.client.Do(req)
	if err != nil {
		return nil, &RequestError{Text: s.text, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &RequestError{Text: s.text, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Text: s.text, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}
