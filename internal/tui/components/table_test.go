package components

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteTable(&buf, []Row{
		{Path: "color.primary", Status: "success", Hex: "#ffffff"},
		{Path: "color.bad", Status: "failed", Error: "conversion_failed"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, []string{"PATH", "STATUS", "HEX", "ERROR"}, strings.Fields(lines[0]))
	require.Equal(t, []string{"color.primary", "success", "#ffffff", "-"}, strings.Fields(lines[1]))
	require.Equal(t, []string{"color.bad", "failed", "-", "conversion_failed"}, strings.Fields(lines[2]))
}

func TestWriteTableEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, nil))
	require.Equal(t, "PATH  STATUS  HEX  ERROR\n", buf.String())
}
