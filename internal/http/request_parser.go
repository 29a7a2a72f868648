// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing editor requests. HTMX posts
// form-encoded bodies by default; the json-enc extension and API clients
// send JSON. Both are accepted.

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"storefront/internal/core"
	"storefront/internal/editor"
)

// maxBodyBytes bounds editor request bodies.
const maxBodyBytes = 64 << 10

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data, commonly used with HTMX.
type RequestBodyParser struct {
	body     []byte
	jsonData map[string]any
	formData url.Values
	parsed   bool
	err      error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{}
	if r.Body != nil {
		p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	}
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if p.body[0] == '{' {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = err
			return err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Lookup returns the sanitised value for key and whether it was sent at all.
// An explicitly empty value is reported as present.
func (p *RequestBodyParser) Lookup(key string) (string, bool) {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val)), true
		}
		return "", false
	}
	if p.formData != nil {
		if vals, ok := p.formData[key]; ok && len(vals) > 0 {
			return sanitizeInput(vals[0]), true
		}
	}
	return "", false
}

// Get returns the value for key, or "" when absent.
func (p *RequestBodyParser) Get(key string) string {
	v, _ := p.Lookup(key)
	return v
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

// stringValue converts a decoded JSON value to string.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// DraftActions turns the posted fields into UpdateDraftField actions in
// schema order. Names the schema does not declare are ignored here, so the
// editor never sees them.
func DraftActions(p *RequestBodyParser, schema core.Schema) []editor.Action {
	var actions []editor.Action
	for _, f := range schema.Fields {
		if v, ok := p.Lookup(f.Name); ok {
			actions = append(actions, editor.UpdateDraftField{Name: f.Name, Value: v})
		}
	}
	return actions
}
