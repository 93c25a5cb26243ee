package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type client struct {
	BaseURL   string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
	Out       io.Writer
}

func (c *client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	u := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

// call hace el request y convierte cualquier no-2xx en error con el mensaje del API.
func (c *client) call(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	status, b, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if status/100 != 2 {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(b, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("%s %s: status=%d %s: %s", method, path, status, apiErr.Code, apiErr.Message)
		}
		return nil, fmt.Errorf("%s %s: status=%d body=%s", method, path, status, string(b))
	}
	return b, nil
}

// printList imprime un array JSON de strings: uno por línea en text, indentado en json.
func (c *client) printList(body []byte) error {
	var items []string
	if err := json.Unmarshal(body, &items); err != nil {
		return fmt.Errorf("respuesta inesperada: %w", err)
	}
	if c.OutFormat == "json" {
		return c.printJSON(items)
	}
	if len(items) == 0 {
		fmt.Fprintln(c.Out, "(vacío)")
		return nil
	}
	for _, it := range items {
		fmt.Fprintln(c.Out, it)
	}
	return nil
}

// printMessage imprime {"message": ...}.
func (c *client) printMessage(body []byte) error {
	var m struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &m); err != nil {
		return fmt.Errorf("respuesta inesperada: %w", err)
	}
	if c.OutFormat == "json" {
		return c.printJSON(m)
	}
	fmt.Fprintln(c.Out, m.Message)
	return nil
}

func (c *client) printJSON(v any) error {
	p, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.Out, string(p))
	return nil
}

func escape(s string) string { return url.PathEscape(s) }
