package util

import (
	"testing"

	"github.com/stretchr/testify/require"

	"local-file-manager/internal/model"
)

func TestValidateFileName(t *testing.T) {
	t.Parallel()

	accepted := []string{
		"report.pdf",
		"photo 2024.jpg",
		".env",
		"CONSOLE.txt",
		"my.con.txt",
		"naïve résumé.md",
	}
	for _, name := range accepted {
		t.Run("accepts "+name, func(t *testing.T) {
			require.NoError(t, ValidateFileName(name))
		})
	}

	rejected := map[string]string{
		"empty":             "",
		"whitespace only":   "   ",
		"angle bracket":     "a<b",
		"colon":             "a:b",
		"pipe":              "a|b",
		"question mark":     "what?",
		"asterisk":          "*.txt",
		"double quote":      `say"hi"`,
		"slash":             "dir/file",
		"backslash":         `dir\file`,
		"control character": "bad\x01name",
		"newline":           "line\nbreak",
		"reserved CON":      "CON",
		"reserved lower":    "con.txt",
		"reserved COM1":     "com1",
		"reserved LPT9 ext": "LPT9.tar.gz",
		"trailing dot":      "file.",
		"trailing space":    "file ",
		"dot":               ".",
		"dot dot":           "..",
	}
	for label, name := range rejected {
		t.Run("rejects "+label, func(t *testing.T) {
			err := ValidateFileName(name)
			require.Error(t, err)
			require.ErrorIs(t, err, model.ErrInvalidName)
		})
	}
}
