package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// TypedResponse is a reply with its JSON body decoded into T.
type TypedResponse[T any] struct {
	StatusCode int
	Header     http.Header
	Data       T
}

func GetJSON[T any](ctx context.Context, c *Client, path string) (*TypedResponse[T], error) {
	return doJSON[T](ctx, c, Request{Method: http.MethodGet, Path: path})
}

func PostJSON[T any](ctx context.Context, c *Client, path string, body any) (*TypedResponse[T], error) {
	return doJSON[T](ctx, c, Request{Method: http.MethodPost, Path: path, Body: body})
}

// PostMultipart uploads a form and decodes the JSON reply.
func PostMultipart[T any](ctx context.Context, c *Client, path string, body *MultipartBody) (*TypedResponse[T], error) {
	return doJSON[T](ctx, c, Request{Method: http.MethodPost, Path: path, Body: body})
}

func doJSON[T any](ctx context.Context, c *Client, req Request) (*TypedResponse[T], error) {
	req.Headers = map[string]string{"Accept": "application/json"}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var data T
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return nil, fmt.Errorf("httpclient: decode response: %w", err)
		}
	}
	return &TypedResponse[T]{StatusCode: resp.StatusCode, Header: resp.Header, Data: data}, nil
}
