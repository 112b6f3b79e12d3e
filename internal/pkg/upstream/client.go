package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"github.com/ougirez/turnero/internal/pkg/constants"
)

const (
	getRetryInterval = 100 * time.Millisecond
	getMaxRetries    = 3
)

func (c *client) endpoint(path string, query url.Values) string {
	u := strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// getJSON issues a GET with a bounded constant-backoff retry and decodes the
// body into out.
func (c *client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	var body []byte
	err := backoff.Retry(
		func() error {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
			if reqErr != nil {
				return backoff.Permanent(reqErr)
			}

			resp, httpErr := c.httpc.Do(req)
			if httpErr != nil {
				return fmt.Errorf("http.Do: %w", httpErr)
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusNotFound {
				return backoff.Permanent(constants.ErrUpstreamNotFound)
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("%w: status %d on %s", constants.ErrUpstream, resp.StatusCode, path)
			}

			var readErr error
			body, readErr = io.ReadAll(resp.Body)
			if readErr != nil {
				return fmt.Errorf("read body: %w", readErr)
			}
			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(getRetryInterval), getMaxRetries),
			ctx,
		),
	)
	if err != nil {
		return err
	}

	if err = sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return nil
}

// patchJSON issues a single PATCH without retries; mutations are not
// replayed on transport errors.
func (c *client) patchJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.endpoint(path, nil), bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return constants.ErrUpstreamNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d on %s", constants.ErrUpstream, resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err = sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return nil
}

func csv(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
