package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/makremffff/index.html-bota/pkg/clients"
)

// Client is the narrow contract against the remote record store. Collections
// are addressed by name; every call carries a bounded timeout through the
// underlying HTTP client.
//
// Delete reports whether a row was actually removed. A missing row is not an
// error: delete-by-id on an already-deleted row returns false, which is the
// primitive single-use token consumption is built on.
type Client interface {
	List(ctx context.Context, collection string, q Query) ([]Record, error)
	Create(ctx context.Context, collection string, fields Fields) (Record, error)
	Update(ctx context.Context, collection string, id int64, fields Fields) error
	Delete(ctx context.Context, collection string, id int64) (bool, error)
}

type RESTClient struct {
	baseURL string
	token   string
	client  clients.HTTPClientI
}

func New(baseURL, token string, client clients.HTTPClientI) *RESTClient {
	return &RESTClient{
		baseURL: baseURL,
		token:   token,
		client:  client,
	}
}

func (c *RESTClient) List(ctx context.Context, collection string, q Query) ([]Record, error) {
	url := c.recordsURL(collection)
	if encoded := q.Encode(); encoded != "" {
		url += "?" + encoded
	}

	status, body, err := c.client.DoJSON(ctx, http.MethodGet, url, c.headers(), nil)
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", collection, err)
	}
	if status != http.StatusOK {
		return nil, storeError("list", collection, status, body)
	}

	var resp struct {
		List []Record `json:"list"`
	}
	if err := decodeJSON(body, &resp); err != nil {
		return nil, fmt.Errorf("store: list %s: decode response: %w", collection, err)
	}
	return resp.List, nil
}

func (c *RESTClient) Create(ctx context.Context, collection string, fields Fields) (Record, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("store: create %s: encode fields: %w", collection, err)
	}

	status, body, err := c.client.DoJSON(ctx, http.MethodPost, c.recordsURL(collection), c.headers(), payload)
	if err != nil {
		return nil, fmt.Errorf("store: create %s: %w", collection, err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, storeError("create", collection, status, body)
	}

	var rec Record
	if err := decodeJSON(body, &rec); err != nil {
		return nil, fmt.Errorf("store: create %s: decode response: %w", collection, err)
	}
	return rec, nil
}

func (c *RESTClient) Update(ctx context.Context, collection string, id int64, fields Fields) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("store: update %s: encode fields: %w", collection, err)
	}

	url := c.recordsURL(collection) + "/" + strconv.FormatInt(id, 10)
	status, body, err := c.client.DoJSON(ctx, http.MethodPatch, url, c.headers(), payload)
	if err != nil {
		return fmt.Errorf("store: update %s/%d: %w", collection, id, err)
	}
	if status != http.StatusOK {
		return storeError("update", collection, status, body)
	}
	return nil
}

func (c *RESTClient) Delete(ctx context.Context, collection string, id int64) (bool, error) {
	url := c.recordsURL(collection) + "/" + strconv.FormatInt(id, 10)
	status, body, err := c.client.DoJSON(ctx, http.MethodDelete, url, c.headers(), nil)
	if err != nil {
		return false, fmt.Errorf("store: delete %s/%d: %w", collection, id, err)
	}
	switch status {
	case http.StatusOK, http.StatusNoContent:
		return true, nil
	case http.StatusNotFound:
		// The row is already gone: a concurrent call won the delete.
		return false, nil
	default:
		return false, storeError("delete", collection, status, body)
	}
}

func (c *RESTClient) recordsURL(collection string) string {
	return c.baseURL + "/api/v2/tables/" + collection + "/records"
}

func (c *RESTClient) headers() http.Header {
	h := http.Header{}
	if c.token != "" {
		h.Set("xc-token", c.token)
	}
	return h
}

func storeError(op, collection string, status int, body []byte) error {
	var resp struct {
		Message string `json:"msg"`
	}
	if err := json.Unmarshal(body, &resp); err == nil && resp.Message != "" {
		zap.L().Error("record store rejected call",
			zap.String("op", op),
			zap.String("collection", collection),
			zap.Int("status", status),
			zap.String("msg", resp.Message),
		)
		return fmt.Errorf("store: %s %s: status %d: %s", op, collection, status, resp.Message)
	}
	return fmt.Errorf("store: %s %s: unexpected status %d", op, collection, status)
}

func decodeJSON(body []byte, out interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(out)
}
