package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRawRows(t *testing.T) {
	t.Run("reads ragged rows", func(t *testing.T) {
		input := "Acme Corp,25.12.2023,\"-1.234,56 €\",Card payment • Shopping,,note\ncontinued,,\n"

		rows, err := ReadRawRows(strings.NewReader(input), "")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Len(t, rows[0], 6)
		assert.Len(t, rows[1], 3)
		assert.Equal(t, "-1.234,56 €", rows[0][2])
	})

	t.Run("keeps cells as printed", func(t *testing.T) {
		input := " Acme Corp ,25.12.2023,\"  -1,00 €\"\n"

		rows, err := ReadRawRows(strings.NewReader(input), "utf-8")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, " Acme Corp ", rows[0][0])
		assert.Equal(t, "  -1,00 €", rows[0][2])
	})

	t.Run("decodes windows-1252 bullets and euro signs", func(t *testing.T) {
		var buf bytes.Buffer
		buf.WriteString("Shop,01.02.2023,\"12,00 ")
		buf.WriteByte(0x80) // €
		buf.WriteString("\",Card ")
		buf.WriteByte(0x95) // •
		buf.WriteString(" Food,,\n")

		rows, err := ReadRawRows(&buf, "windows-1252")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "12,00 €", rows[0][2])
		assert.Equal(t, "Card • Food", rows[0][3])
	})

	t.Run("rejects unknown charset", func(t *testing.T) {
		_, err := ReadRawRows(strings.NewReader(""), "klingon-8")
		assert.Error(t, err)
	})
}

func TestParseError_Error(t *testing.T) {
	err := ParseError{Row: 3, Column: "Date", Message: "bad"}
	assert.Equal(t, "row 3, column Date: bad", err.Error())
}
