package outwriter

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"golang.org/x/term"
)

const (
	defaultTermWidth = 80
	minTextWidth     = 40
	maxTextWidth     = 100
)

// getTextWidth returns the width for wrapped paragraphs, based on the
// --width override or the terminal width.
func getTextWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detected, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detected <= 0 {
			// Conservative default for pipes and CI
			termWidth = defaultTermWidth
		} else {
			termWidth = detected
		}
	}
	return min(max(termWidth-2, minTextWidth), maxTextWidth)
}

// wrap soft-wraps a paragraph at word boundaries.
func wrap(s string, width int) string {
	return text.WrapSoft(s, width)
}
