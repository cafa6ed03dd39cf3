// Package gedcom is the orchestration facade over the parse/validate/map
// pipeline and its inverse. It implements the three call contracts the
// toolkit exposes: Import, Preview (dry-run validate) and Export.
package gedcom

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gedkit/gedkit/pkg/exporter"
	"github.com/gedkit/gedkit/pkg/finding"
	"github.com/gedkit/gedkit/pkg/generator"
	"github.com/gedkit/gedkit/pkg/mapper"
	"github.com/gedkit/gedkit/pkg/model"
	"github.com/gedkit/gedkit/pkg/parser"
	"github.com/gedkit/gedkit/pkg/validator"
)

// Service runs import, preview and export pipelines. A Service is stateless
// and safe for concurrent use; every run allocates its own id and
// cross-reference namespaces.
type Service struct {
	log        *zap.Logger
	appName    string
	appVersion string
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a structured logger. Defaults to a no-op logger so
// library callers stay silent.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithProducer sets the application identity written to generated headers.
func WithProducer(name, version string) Option {
	return func(s *Service) {
		s.appName = name
		s.appVersion = version
	}
}

// WithClock overrides the generation timestamp source, for deterministic
// exports in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a Service.
func NewService(opts ...Option) *Service {
	s := &Service{
		log:     zap.NewNop(),
		appName: "gedkit",
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ImportResult reports a committed import batch.
type ImportResult struct {
	// RunID identifies this import run in reports and logs.
	RunID uuid.UUID `json:"run_id"`

	// People is the number of persons committed.
	People int `json:"people"`

	// Relationships is the number of edges committed.
	Relationships int `json:"relationships"`

	// Findings holds the warnings produced along the way. An ImportResult
	// never carries error-severity findings; those abort the batch.
	Findings finding.List `json:"findings"`
}

// ImportError is returned when an import batch is blocked. Nothing was
// committed; Findings explains why.
type ImportError struct {
	Findings finding.List
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import blocked by %d error finding(s)", e.Findings.Count(finding.SeverityError))
}

// Import runs the full pipeline over raw file bytes and commits the resulting
// graph to the store.
//
// The batch is all or nothing: any error-severity finding from validation, or
// a mapping-fatal finding (broken_reference, invalid_format), aborts the whole
// import with *ImportError and the store is never touched. Warnings ride
// along on the success result.
func (s *Service) Import(ctx context.Context, data []byte, store model.Store) (*ImportResult, error) {
	runID := uuid.New()
	log := s.log.With(zap.String("run_id", runID.String()))

	mapped, findings := s.runPipeline(log, data)
	if findings.HasErrors() {
		log.Warn("import blocked",
			zap.Int("errors", findings.Count(finding.SeverityError)),
			zap.Int("warnings", findings.Count(finding.SeverityWarning)))
		return nil, &ImportError{Findings: findings}
	}

	if err := store.SaveGraph(ctx, mapped.People, mapped.Relationships); err != nil {
		return nil, fmt.Errorf("saving graph: %w", err)
	}

	log.Info("import committed",
		zap.Int("people", len(mapped.People)),
		zap.Int("relationships", len(mapped.Relationships)),
		zap.Int("warnings", len(findings)))

	return &ImportResult{
		RunID:         runID,
		People:        len(mapped.People),
		Relationships: len(mapped.Relationships),
		Findings:      findings,
	}, nil
}

// PreviewResult reports what an import would produce, without committing.
type PreviewResult struct {
	// RunID identifies this preview run.
	RunID uuid.UUID `json:"run_id"`

	// People is the number of persons the file would produce.
	People int `json:"people"`

	// Relationships is the number of edges the file would produce.
	Relationships int `json:"relationships"`

	// FamilyClusters is the number of family units the graph would export
	// back into.
	FamilyClusters int `json:"family_clusters"`

	// Findings is the complete findings list, errors included.
	Findings finding.List `json:"findings"`

	// WouldCommit is false when an import of the same bytes would be
	// blocked.
	WouldCommit bool `json:"would_commit"`
}

// Preview is the dry-run contract: it runs the same pipeline as Import but
// touches no store and reports everything it found.
func (s *Service) Preview(_ context.Context, data []byte) *PreviewResult {
	runID := uuid.New()
	log := s.log.With(zap.String("run_id", runID.String()))

	mapped, findings := s.runPipeline(log, data)

	// Cluster count comes from the same reconstruction export performs.
	clusters := exporter.Map(mapped.People, mapped.Relationships)

	return &PreviewResult{
		RunID:          runID,
		People:         len(mapped.People),
		Relationships:  len(mapped.Relationships),
		FamilyClusters: len(clusters.Families),
		Findings:       findings,
		WouldCommit:    !findings.HasErrors(),
	}
}

// runPipeline is the shared parse, validate and map sequence.
func (s *Service) runPipeline(log *zap.Logger, data []byte) (*mapper.Result, finding.List) {
	text := decode(data)

	tree, findings := parser.Parse(text)
	log.Debug("parsed", zap.Int("records", len(tree.Records)), zap.Int("findings", len(findings)))

	findings.Merge(validator.Validate(tree))

	mapped := mapper.Map(tree)
	findings.Merge(mapped.Findings)

	log.Debug("mapped",
		zap.Int("people", len(mapped.People)),
		zap.Int("relationships", len(mapped.Relationships)),
		zap.Int("findings", len(findings)))

	return mapped, findings
}

// ExportResult carries generated GEDCOM text and export statistics.
type ExportResult struct {
	// Text is the complete generated GEDCOM file.
	Text string

	// People and Families count the emitted records.
	People   int
	Families int

	// Findings reports internal-model inconsistencies that were skipped.
	// Export never fails on data shape.
	Findings finding.List
}

// Export reads the full graph from the store, reconstructs family units and
// generates GEDCOM text. Inconsistent edges are skipped with findings so
// export always terminates with output.
func (s *Service) Export(ctx context.Context, store model.Store) (*ExportResult, error) {
	people, relationships, err := store.LoadGraph(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}

	mapped := exporter.Map(people, relationships)
	text := generator.Generate(mapped.Individuals, mapped.Families, generator.Options{
		AppName:    s.appName,
		AppVersion: s.appVersion,
		Now:        s.now,
	})

	s.log.Info("export generated",
		zap.Int("people", len(mapped.Individuals)),
		zap.Int("families", len(mapped.Families)),
		zap.Int("findings", len(mapped.Findings)))

	return &ExportResult{
		Text:     text,
		People:   len(mapped.Individuals),
		Families: len(mapped.Families),
		Findings: mapped.Findings,
	}, nil
}

// decode converts raw file bytes to text, dropping a UTF-8 byte order mark
// when present.
func decode(data []byte) string {
	return string(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}
