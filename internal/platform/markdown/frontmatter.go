package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// SplitFrontmatter separates a leading YAML block from the note body. A
// malformed YAML block still yields the body (with the block removed) next to
// the decode error so callers may degrade to "no metadata".
func SplitFrontmatter(content string) (map[string]any, string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, separator) {
		return map[string]any{}, content, nil
	}
	rest := strings.TrimPrefix(content, separator)
	raw, body, ok := cutClosing(rest)
	if !ok {
		return nil, content, fmt.Errorf("invalid frontmatter: missing closing separator")
	}

	decoded := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, body, fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return decoded, body, nil
}

func cutClosing(rest string) (string, string, bool) {
	if strings.HasPrefix(rest, separator) {
		return "", rest[len(separator):], true
	}
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return "", "", false
	}
	body := rest[idx+len("\n---"):]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && strings.TrimSpace(body[:nl]) == "" {
		body = body[nl+1:]
	} else if strings.TrimSpace(body) == "" {
		body = ""
	}
	return rest[:idx], body, true
}

func RenderFrontmatter(meta map[string]any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf := bytes.Buffer{}
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	return buf.String(), nil
}
