package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "ct.txt")
	require.NoError(t, os.WriteFile(file, []byte("from file\r\n"), 0o600))

	tests := []struct {
		name    string
		text    string
		file    string
		stdin   string
		want    string
		wantErr string
	}{
		{name: "text flag", text: "from flag", stdin: "ignored", want: "from flag"},
		{name: "file flag", file: file, want: "from file"},
		{name: "stdin", stdin: "from stdin\n", want: "from stdin"},
		{name: "inner line breaks kept", stdin: "two\nlines\n\n", want: "two\nlines"},
		{name: "empty stdin", stdin: "", want: ""},
		{name: "both flags", text: "a", file: file, wantErr: "mutually exclusive"},
		{name: "missing file", file: filepath.Join(dir, "nope.txt"), wantErr: "failed to read ciphertext file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &cobra.Command{}
			c.SetIn(strings.NewReader(tt.stdin))

			got, err := readInput(c, tt.text, tt.file)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
