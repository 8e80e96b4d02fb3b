package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/tokenhex/internal/report"
)

func sampleReport() *report.Report {
	return &report.Report{
		Timestamp: time.Unix(1759492800, 0).UTC(),
		Summary:   report.Summary{Total: 3, Successful: 2, Failed: 1},
	}
}

func TestObserveSetsGauges(t *testing.T) {
	t.Parallel()

	c := NewCollectors()
	c.Observe(sampleReport())

	require.Equal(t, 2.0, testutil.ToFloat64(c.Tokens.WithLabelValues("success")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.Tokens.WithLabelValues("failed")))
	require.Equal(t, 3.0, testutil.ToFloat64(c.Total))
	require.Equal(t, 1759492800.0, testutil.ToFloat64(c.LastRunTS))
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "textfile", "tokenhex.prom")
	require.NoError(t, WriteTextfile(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	require.Contains(t, out, `tokenhex_tokens{status="failed"} 1`)
	require.Contains(t, out, `tokenhex_tokens{status="success"} 2`)
	require.Contains(t, out, "tokenhex_tokens_found 3")
	require.Contains(t, out, "# TYPE tokenhex_last_run_timestamp_seconds gauge")
}

func TestWriteTextfileRejectsNil(t *testing.T) {
	t.Parallel()

	require.Error(t, WriteTextfile(filepath.Join(t.TempDir(), "m.prom"), nil))
}
