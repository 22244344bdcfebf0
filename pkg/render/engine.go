package render

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/barqly/release-pages/pkg/page"
)

// Structured placeholder tokens expanded from the page model rather than
// from scalar variables.
const (
	TokenDownloadRows   = "{{DOWNLOAD_ROWS}}"
	TokenVersionHistory = "{{VERSION_HISTORY}}"
)

// Token returns the placeholder form of a variable key, e.g.
// Token("LATEST_VERSION") == "{{LATEST_VERSION}}".
func Token(key string) string {
	return "{{" + key + "}}"
}

// Render expands a page template against the model using the supplied
// renderer for format-specific blocks. Rendering is a pure function of its
// inputs: identical template, model, and options always produce identical
// output. Tokens with no matching variable are left verbatim.
func Render(ctx context.Context, renderer Renderer, tpl Template, model page.Model, opts RenderOptions) (string, error) {
	if ctx == nil {
		return "", errors.New("render: context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if renderer == nil {
		return "", errors.New("render: renderer is required")
	}

	content := substituteVariables(tpl.Body, model.Variables, opts.Variables)

	if strings.Contains(content, TokenDownloadRows) {
		rows := make([]string, 0, len(model.Downloads))
		for _, row := range model.Downloads {
			rendered, err := renderer.DownloadRow(ctx, row)
			if err != nil {
				return "", fmt.Errorf("render: download row %q: %w", row.Key, err)
			}
			rows = append(rows, rendered)
		}
		content = strings.ReplaceAll(content, TokenDownloadRows, strings.Join(rows, "\n"))
	}

	if strings.Contains(content, TokenVersionHistory) {
		history, err := renderer.VersionHistory(ctx, model.History)
		if err != nil {
			return "", fmt.Errorf("render: version history: %w", err)
		}
		content = strings.ReplaceAll(content, TokenVersionHistory, history)
	}

	return content, nil
}

// substituteVariables replaces every {{KEY}} occurrence for each variables
// entry. Overrides win over defaults; keys are applied in sorted order so
// output stays deterministic even when a value itself contains a token.
func substituteVariables(content string, defaults, overrides map[string]string) string {
	merged := make(map[string]string, len(defaults)+len(overrides))
	for key, value := range defaults {
		merged[key] = value
	}
	for key, value := range overrides {
		merged[key] = value
	}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		content = strings.ReplaceAll(content, Token(key), merged[key])
	}
	return content
}
