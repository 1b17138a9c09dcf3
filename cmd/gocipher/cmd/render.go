package cmd

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/gocipher/internal/cipher"
)

const previewWidth = 60

var (
	bestStyle   = color.New(color.FgGreen, color.OpBold)
	headerStyle = color.New(color.OpBold)
	warnStyle   = color.New(color.FgYellow)
)

var flattenWhitespace = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// fit truncates s to width terminal cells and pads it to exactly width.
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// preview flattens line breaks and fits text into the plaintext column.
func preview(text string) string {
	return fit(flattenWhitespace.Replace(text), previewWidth)
}

// formatKey renders shifts as letters and permutations as index lists.
func formatKey(family cipher.Family, key cipher.Key) string {
	if family.IsPolyalphabetic() {
		return fmt.Sprintf("%s %v", key.Letters(), []int(key))
	}
	return key.String()
}

// header renders bold column titles laid out like row.
func header(widths []int, titles ...string) string {
	return headerStyle.Sprint(row(widths, titles...))
}

// row joins cells fitted to widths. The last cell is not padded.
func row(widths []int, cells ...string) string {
	out := make([]string, len(cells))
	for i, c := range cells {
		if i == len(cells)-1 {
			out[i] = c
			continue
		}
		out[i] = fit(c, widths[i])
	}
	return strings.Join(out, "  ")
}
