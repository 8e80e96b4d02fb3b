package report

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/tokenhex/internal/color"
	"github.com/alexisbeaulieu97/tokenhex/internal/logger"
	"github.com/alexisbeaulieu97/tokenhex/internal/metrics"
	"github.com/alexisbeaulieu97/tokenhex/internal/report"
	"github.com/alexisbeaulieu97/tokenhex/internal/source"
	"github.com/alexisbeaulieu97/tokenhex/internal/tokens"
	"github.com/alexisbeaulieu97/tokenhex/pkg/diff"
)

// Request configures one report run.
type Request struct {
	Input       string
	Rev         string
	Format      tokens.Format
	HexCase     color.HexCase
	Output      string
	NoWrite     bool
	MetricsFile string
	// Diff compares the new results against the report already at Output.
	Diff bool
}

// Outcome is what a run produced.
type Outcome struct {
	RunID      string
	Report     *report.Report
	OutputPath string
	// Diff is a unified diff of result lines, empty when nothing changed.
	Diff string
}

// Service runs the load, walk, normalize, assemble and write pipeline.
type Service struct {
	log *logger.Logger
	now func() time.Time
}

// NewService constructs a Service. A nil logger disables logging.
func NewService(log *logger.Logger) *Service {
	return &Service{log: log, now: time.Now}
}

// WithClock replaces the time source used for report timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Run executes one report generation. Per-token failures are part of the
// returned report; only document-level problems are returned as errors.
func (s *Service) Run(ctx context.Context, req Request) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := s.log.WithFields(map[string]any{
		"correlation_id": runID,
		"input":          req.Input,
	})
	if req.Rev != "" {
		log = log.WithField("rev", req.Rev)
	}

	started := s.now()
	doc, err := source.Load(source.Request{Path: req.Input, Rev: req.Rev, Format: req.Format})
	if err != nil {
		log.Error(err, "failed to load token document")
		return nil, err
	}
	log.Debug("token document loaded")

	normalizer := color.NewNormalizer(color.Options{HexCase: req.HexCase})
	rep := report.Assemble(tokens.Walk(doc), normalizer, s.now())

	for _, failure := range rep.Failures() {
		log.WithFields(map[string]any{"path": failure.Path, "reason": failure.Error, "detail": failure.Detail}).Debug("color token failed to convert")
	}

	outcome := &Outcome{RunID: runID, Report: rep}

	if req.Diff {
		outcome.Diff = s.diffPrevious(log, req.Output, rep)
	}

	if !req.NoWrite {
		if err := report.Write(req.Output, rep); err != nil {
			log.Error(err, "failed to write report")
			return nil, fmt.Errorf("write report: %w", err)
		}
		outcome.OutputPath = req.Output
	}

	if req.MetricsFile != "" {
		if err := metrics.WriteTextfile(req.MetricsFile, rep); err != nil {
			log.Error(err, "failed to write metrics")
			return nil, err
		}
	}

	log.WithFields(map[string]any{
		"total":      rep.Summary.Total,
		"successful": rep.Summary.Successful,
		"failed":     rep.Summary.Failed,
		"output":     outcome.OutputPath,
		"duration":   s.now().Sub(started).String(),
	}).Info("color report generated")

	return outcome, nil
}

func (s *Service) diffPrevious(log *logger.Logger, path string, rep *report.Report) string {
	var previous *report.Report
	if path != "" {
		prev, err := report.Read(path)
		switch {
		case err == nil:
			previous = prev
		case errors.Is(err, fs.ErrNotExist):
		default:
			log.WithField("error", err.Error()).Warn("previous report unreadable, diffing against an empty report")
		}
	}
	return diff.Unified(previous.Lines(), rep.Lines(), path+" (previous)", path+" (current)")
}
