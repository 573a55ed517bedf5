// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

// Package directus is a read-only client for the metadata endpoints of a
// Directus-compatible API: /collections, /fields and /relations.
package directus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type ClientOption func(c *Client)

// WithToken sets a static access token, sent as a bearer token on every
// request. An empty token leaves requests unauthenticated.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response decoded from the Directus error envelope.
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail
}

type ErrorDetail struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

func (e *APIError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "directus: status %d", e.StatusCode)
	for _, d := range e.Errors {
		sb.WriteString(": ")
		if d.Extensions.Code != "" {
			sb.WriteString(d.Extensions.Code)
			sb.WriteString(" ")
		}
		sb.WriteString(d.Message)
	}
	return sb.String()
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Errors []ErrorDetail `json:"errors"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil {
			apiErr.Errors = envelope.Errors
		}
		return apiErr
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", path, err)
	}
	return nil
}

func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	var out []Collection
	if err := c.get(ctx, "/collections", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Fields(ctx context.Context) ([]Field, error) {
	var out []Field
	if err := c.get(ctx, "/fields", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Relations(ctx context.Context) ([]Relation, error) {
	var out []Relation
	if err := c.get(ctx, "/relations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Snapshot fetches collections, fields and relations in one call.
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	collections, err := c.Collections(ctx)
	if err != nil {
		return nil, err
	}
	fields, err := c.Fields(ctx)
	if err != nil {
		return nil, err
	}
	relations, err := c.Relations(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Collections: collections,
		Fields:      fields,
		Relations:   relations,
	}, nil
}
