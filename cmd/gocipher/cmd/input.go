package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// readInput returns the ciphertext from --text, --file or standard input,
// in that order. A trailing line break is dropped; everything else is kept
// as given.
func readInput(cmd *cobra.Command, text, file string) (string, error) {
	if text != "" && file != "" {
		return "", fmt.Errorf("--text and --file are mutually exclusive")
	}

	var raw string
	switch {
	case text != "":
		raw = text
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read ciphertext file: %w", err)
		}
		raw = string(data)
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read ciphertext from stdin: %w", err)
		}
		raw = string(data)
	}

	return strings.TrimRight(raw, "\r\n"), nil
}
