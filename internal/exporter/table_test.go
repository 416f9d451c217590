package exporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableWriter_Render(t *testing.T) {
	table := NewTableWriter("gender", "amount").SetAlign(1, AlignRight)
	table.Append("Female", "$1,200.00")
	table.Append("Male", "$300.00")

	var buf bytes.Buffer
	require.NoError(t, table.Render(&buf))

	want := "" +
		"gender     amount\n" +
		"------  ---------\n" +
		"Female  $1,200.00\n" +
		"Male      $300.00\n"
	assert.Equal(t, want, buf.String())
}

func TestTableWriter_WideCharacters(t *testing.T) {
	table := NewTableWriter("language", "count")
	table.Append("中文", "3")
	table.Append("English", "12")

	var buf bytes.Buffer
	require.NoError(t, table.Render(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	// the count column starts at the same display offset on every row
	col := runewidth.StringWidth("language  ")
	for _, line := range lines[2:] {
		prefix := []rune(line)
		width := 0
		i := 0
		for ; i < len(prefix) && width < col; i++ {
			width += runewidth.RuneWidth(prefix[i])
		}
		assert.Equal(t, col, width, line)
		assert.NotEqual(t, ' ', prefix[i], line)
	}
}

func TestTableWriter_RaggedRows(t *testing.T) {
	table := NewTableWriter("a", "b")
	table.Append("x")
	table.Append("y", "z", "dropped")

	var buf bytes.Buffer
	require.NoError(t, table.Render(&buf))
	assert.Equal(t, "a  b\n-  -\nx\ny  z\n", buf.String())
}
