package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viant/mcp-registry/internal/conv"
)

// Content is one content block of a tool result.
type Content struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// Result is the wrapped shape callers receive.
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// TextResult creates a single text block result.
func TextResult(text string) *Result {
	return &Result{Content: []Content{{Type: "text", Text: text}}}
}

// Text joins text blocks.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	var parts []string
	for _, c := range r.Content {
		if c.Type == "text" {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Shape wraps a raw handler result unless it already has the result shape.
func Shape(raw interface{}) (*Result, error) {
	switch actual := raw.(type) {
	case nil:
		return &Result{Content: []Content{}}, nil
	case *Result:
		if actual == nil {
			return &Result{Content: []Content{}}, nil
		}
		return actual, nil
	case Result:
		return &actual, nil
	case string:
		return TextResult(actual), nil
	case []byte:
		return TextResult(string(actual)), nil
	case map[string]interface{}:
		if _, ok := actual["content"]; ok {
			ret := &Result{}
			if err := conv.Convert(actual, ret); err != nil {
				return nil, fmt.Errorf("invalid content result: %w", err)
			}
			return ret, nil
		}
	}
	text, err := encode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return TextResult(text), nil
}

func encode(value interface{}) (string, error) {
	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
