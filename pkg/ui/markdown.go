package ui

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders a report for the terminal, wrapped at width.
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// CopyToClipboard places text on the system clipboard. In test mode it is a
// no-op.
func CopyToClipboard(text string) error {
	if os.Getenv("CVIZ_TEST_MODE") != "" {
		return nil
	}
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard not supported on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
