// Package diff renders line-oriented unified diffs.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Unified compares two texts line by line. It returns an empty string when
// they are identical. Output beyond maxDiffLines is truncated with a marker.
func Unified(before, after []byte, beforeLabel, afterLabel string) string {
	if bytes.Equal(before, after) {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n", beforeLabel)
	fmt.Fprintf(&buf, "+++ %s\n", afterLabel)
	fmt.Fprintf(&buf, "@@ -%s +%s @@\n", hunkRange(countLines(before)), hunkRange(countLines(after)))

	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}

	result := buf.String()
	out := strings.Split(result, "\n")
	if len(out) > maxDiffLines {
		return strings.Join(out[:maxDiffLines], "\n") + "\n" + truncateMessage + "\n"
	}
	return result
}

// splitLines drops the empty element left by a trailing newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// hunkRange formats "start,count"; an empty side starts at line 0.
func hunkRange(count int) string {
	if count == 0 {
		return "0,0"
	}
	return fmt.Sprintf("1,%d", count)
}

func countLines(data []byte) int {
	return len(splitLines(string(data)))
}
