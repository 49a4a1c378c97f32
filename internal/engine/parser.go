package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Deepak7704/100xSWE/internal/core"
)

// parseGeneration decodes a raw model response into a validated Generation.
// Models routinely wrap JSON in Markdown fences or prose, so extraction is
// tolerant; the decoded object itself is checked strictly.
func parseGeneration(raw string) (*core.Generation, error) {
	jsonStr, err := extractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("model response did not contain a generation object: %w", err)
	}
	jsonStr = sanitizeJSON(jsonStr)

	var gen core.Generation
	if err := json.Unmarshal([]byte(jsonStr), &gen); err != nil {
		return nil, fmt.Errorf("failed to decode generation object: %w", err)
	}

	if len(gen.FileOperations) == 0 {
		return nil, errors.New("generation contained no file operations")
	}
	for i, op := range gen.FileOperations {
		switch op.Op {
		case core.FileOpCreate, core.FileOpUpdate, core.FileOpDelete:
		default:
			return nil, fmt.Errorf("file operation %d has unsupported op %q", i, op.Op)
		}
		if op.Path == "" {
			return nil, fmt.Errorf("file operation %d has an empty path", i)
		}
	}
	return &gen, nil
}

func extractJSON(raw string) (string, error) {
	// Strip an outer pair of Markdown code fences if present.
	if startFence := strings.Index(raw, "```"); startFence != -1 {
		if endFence := strings.LastIndex(raw, "```"); endFence > startFence {
			inner := strings.TrimSpace(raw[startFence+3 : endFence])
			// Trim language identifier if present (e.g. "json")
			if strings.HasPrefix(strings.ToLower(inner), "json") {
				inner = strings.TrimSpace(inner[4:])
			}
			raw = inner
		}
	}

	raw = strings.TrimSpace(raw)

	// Optimistic attempt: the whole thing may already be valid.
	if json.Valid([]byte(raw)) {
		return raw, nil
	}

	// Nested fences: find the first opening fence and the very next closing
	// fence rather than the last one.
	if startFence := strings.Index(raw, "```"); startFence != -1 {
		remaining := raw[startFence+3:]
		if endFenceRelative := strings.Index(remaining, "```"); endFenceRelative != -1 {
			inner := strings.TrimSpace(remaining[:endFenceRelative])
			if strings.HasPrefix(strings.ToLower(inner), "json") {
				inner = strings.TrimSpace(inner[4:])
			}
			raw = inner
		}
	}

	// Now find the first '{' in whatever is left.
	startBrace := strings.Index(raw, "{")
	if startBrace == -1 {
		return "", fmt.Errorf("response did not contain valid JSON start")
	}
	raw = raw[startBrace:]

	decoder := json.NewDecoder(strings.NewReader(raw))
	var msg any
	if err := decoder.Decode(&msg); err != nil {
		return "", fmt.Errorf("failed to decode JSON from response: %w", err)
	}
	// Re-encode to get a clean, compacted JSON string.
	clean, _ := json.Marshal(msg)
	return string(clean), nil
}

// sanitizeJSON attempts to fix common invalid escape sequences in LLM output
// using round-trip validation.
func sanitizeJSON(input string) string {
	if json.Valid([]byte(input)) {
		return input
	}

	var sb strings.Builder
	sb.Grow(len(input) + 20)

	runes := []rune(input)
	length := len(runes)

	for i := 0; i < length; i++ {
		char := runes[i]
		if char != '\\' {
			sb.WriteRune(char)
			continue
		}

		if i+1 >= length {
			// Trailing backslash, escape it.
			sb.WriteRune('\\')
			sb.WriteRune('\\')
			break
		}

		next := runes[i+1]
		switch next {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
			// Valid escape, keep both and skip the next rune.
			sb.WriteRune(char)
			sb.WriteRune(next)
			i++
		default:
			// Invalid escape (e.g. \s in C:\src), escape the backslash and
			// let the next rune be processed normally.
			sb.WriteRune('\\')
			sb.WriteRune('\\')
		}
	}

	repaired := sb.String()
	if json.Valid([]byte(repaired)) {
		return repaired
	}
	return input
}
