package report

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/alexisbeaulieu97/tokenhex/internal/tokens"
	tokenerrors "github.com/alexisbeaulieu97/tokenhex/pkg/errors"
)

// Status is the outcome of converting one token.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Result records the conversion of a single color token.
type Result struct {
	Path   string `json:"path"`
	Source string `json:"source"`
	Hex    string `json:"hex,omitempty"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
	// Detail is the full conversion error. It is logged, not serialized.
	Detail string `json:"-"`
}

// Summary holds the report counters.
type Summary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// Report is the serialized outcome of one run.
type Report struct {
	Timestamp time.Time `json:"timestamp"`
	Summary   Summary   `json:"summary"`
	Results   []Result  `json:"results"`
}

// Converter turns a token value into a hex string.
type Converter interface {
	Normalize(tokens.Value) (string, error)
}

// Assemble runs every (path, value) pair through conv and collects the
// results in sequence order. Conversion failures are recorded and do not stop
// the run.
func Assemble(seq iter.Seq2[string, tokens.Value], conv Converter, now time.Time) *Report {
	rep := &Report{
		Timestamp: now.UTC(),
		Results:   make([]Result, 0),
	}

	for path, value := range seq {
		result := Result{
			Path:   path,
			Source: value.Source(),
		}

		hex, err := conv.Normalize(value)
		if err != nil {
			result.Status = StatusFailed
			result.Error = reasonFor(path, err)
			result.Detail = err.Error()
			rep.Summary.Failed++
		} else {
			result.Status = StatusSuccess
			result.Hex = hex
			rep.Summary.Successful++
		}

		rep.Summary.Total++
		rep.Results = append(rep.Results, result)
	}

	return rep
}

// reasonFor returns the reason code of err and stamps the token path on it.
func reasonFor(path string, err error) string {
	var convErr *tokenerrors.ConversionError
	if !errors.As(err, &convErr) {
		return tokenerrors.ReasonConversionFailed
	}
	convErr.Path = path
	if convErr.Reason == "" {
		return tokenerrors.ReasonConversionFailed
	}
	return convErr.Reason
}

// ExitCode is 0 when nothing failed and 1 otherwise.
func (r *Report) ExitCode() int {
	if r == nil || r.Summary.Failed == 0 {
		return 0
	}
	return 1
}

// Failures returns the failed results in report order.
func (r *Report) Failures() []Result {
	if r == nil {
		return nil
	}
	var failed []Result
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Lines renders one "path status hex-or-error" line per result. Timestamps are
// left out so two runs over the same document render identically.
func (r *Report) Lines() []byte {
	if r == nil {
		return nil
	}
	var buf bytes.Buffer
	for _, res := range r.Results {
		detail := res.Hex
		if res.Status == StatusFailed {
			detail = res.Error
		}
		fmt.Fprintf(&buf, "%s %s %s\n", res.Path, res.Status, detail)
	}
	return buf.Bytes()
}
