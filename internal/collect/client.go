package collect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/siteforge/apiserver/types"
)

// SubmitOptions tunes the backend submission. Caller headers win on
// conflict; the JSON content type is only a default.
type SubmitOptions struct {
	Header http.Header
	Client *http.Client
}

// SubmitResult is the uniform outcome shape: Success with the parsed
// response on a 2xx, a generic failure otherwise. A 4xx/5xx response
// is reported like a network failure, with no parsed error body.
type SubmitResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
	Err     string `json:"error,omitempty"`
}

// Submit performs a single POST of the serialized document to the
// endpoint. It never returns an error; failures are folded into the
// result.
func Submit(ctx context.Context, endpoint string, doc types.SiteConfigDocument, opts *SubmitOptions) SubmitResult {
	body, err := json.Marshal(doc)
	if err != nil {
		return failure(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return failure(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if opts != nil {
		for key, values := range opts.Header {
			req.Header.Del(key)
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}
	}

	client := http.DefaultClient
	if opts != nil && opts.Client != nil {
		client = opts.Client
	}

	resp, err := client.Do(req)
	if err != nil {
		return failure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failure(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var data any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return failure(err)
	}
	return SubmitResult{
		Success: true,
		Data:    data,
		Message: "configuration saved",
	}
}

func failure(err error) SubmitResult {
	return SubmitResult{
		Success: false,
		Message: "failed to save configuration",
		Err:     err.Error(),
	}
}
