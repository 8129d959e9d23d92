package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Result label constants.
const (
	NormalValue  = "Normal"  // Normal value
	ReviewValue  = "Review"  // Review value
	WithinValue  = "Within"  // Within target range
	OutsideValue = "Outside" // Outside target range
)

// Color variables for console output.
var (
	NormalColor = color.New(color.FgGreen)           // NormalColor represents a reading in the normal range.
	ReviewColor = color.New(color.FgRed, color.Bold) // ReviewColor represents a reading worth discussing with a clinician.
	AccentColor = color.New(color.FgCyan)            // AccentColor highlights headings and key numbers.
)

// GetPlainLabel returns a plain text label for a result. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(isNormal bool) string {
	if isNormal {
		return NormalValue
	}
	return ReviewValue
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(isNormal bool) string {
	text := GetPlainLabel(isNormal)
	if isNormal {
		return NormalColor.Sprint(text)
	}
	return ReviewColor.Sprint(text)
}

// GetTargetLabel returns the label for a target range assessment.
func GetTargetLabel(within, colored bool) string {
	switch {
	case within && colored:
		return NormalColor.Sprint(WithinValue)
	case within:
		return WithinValue
	case colored:
		return ReviewColor.Sprint(OutsideValue)
	default:
		return OutsideValue
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateText shortens text to maxWidth runes with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and some content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// GetReferenceDBFilePath returns the path to the SQLite DB file for reference tables.
func GetReferenceDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".mapmykidz_reference.db"
	}
	return filepath.Join(homeDir, ".mapmykidz_reference.db")
}
