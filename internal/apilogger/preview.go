package apilogger

import (
	"encoding/json"
	"strings"
)

// previewLimit caps preview fields so log lines stay small.
const previewLimit = 500

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// requestMeta extracts the model name and a prompt preview from a messages
// API request body. Unparseable bodies yield empty values.
func requestMeta(body []byte) (model, prompt string) {
	if len(body) == 0 {
		return "", ""
	}

	var req struct {
		Model    string `json:"model"`
		Messages []struct {
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return "", ""
	}

	if len(req.Messages) > 0 {
		prompt = contentPreview(req.Messages[len(req.Messages)-1].Content)
	}
	return req.Model, prompt
}

// responseMeta extracts a text preview and token usage from a messages API
// response body. Non-JSON bodies (error pages, event streams) fall back to
// a raw preview with zero usage.
func responseMeta(body []byte) (preview string, inputTokens, outputTokens int) {
	if len(body) == 0 {
		return "", 0, 0
	}

	var resp struct {
		Usage struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return truncateRunes(string(body), previewLimit), 0, 0
	}

	return blocksPreview(resp.Content), resp.Usage.InputTokens, resp.Usage.OutputTokens
}

// contentPreview renders message content, which is either a plain string or
// a list of content blocks.
func contentPreview(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return truncateRunes(s, previewLimit)
	}

	return blocksPreview(raw)
}

// blocksPreview joins the text of all text-type content blocks.
func blocksPreview(raw json.RawMessage) string {
	var blocks []contentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return ""
	}

	var parts []string
	for _, b := range blocks {
		if b.Type == "text" {
			parts = append(parts, b.Text)
		}
	}
	return truncateRunes(strings.Join(parts, " "), previewLimit)
}

// truncateRunes shortens s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
