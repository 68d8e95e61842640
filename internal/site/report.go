package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// BuildReport captures high-level metrics about one site build run.
type BuildReport struct {
	SchemaVersion   int
	BuildID         string
	Start           time.Time
	End             time.Time
	ItemsDiscovered int // content folders found in the source tree
	ItemsPublished  int // eligible items rendered to detail pages
	ItemsSkipped    int // discovered but not published (status filter)
	ItemsFailed     int // load or render failures, isolated per item
	RenderedPages   int // detail pages + listing + about
	StaleRemoved    int // detail pages deleted by the synchronizer
	Errors          []error
	Warnings        []error
	StageDurations  map[string]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
	Outcome         BuildOutcome
	Issues          []ReportIssue
}

// ReportIssueCode enumerates machine-parseable issue identifiers.
// These codes are stable contract and should only be appended (no reuse on removal).
type ReportIssueCode string

const (
	IssueItemLoadFailure   ReportIssueCode = "ITEM_LOAD_FAILURE"
	IssueItemRenderFailure ReportIssueCode = "ITEM_RENDER_FAILURE"
	IssueSyncDeleteFailure ReportIssueCode = "SYNC_DELETE_FAILURE"
	IssueAssetsMissing     ReportIssueCode = "ASSETS_MISSING"
	IssueVerifyMismatch    ReportIssueCode = "VERIFY_MISMATCH"
	IssueGenericStageError ReportIssueCode = "GENERIC_STAGE_ERROR"
)

// IssueSeverity represents normalized severity levels.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// ReportIssue is a structured taxonomy entry describing a discrete problem.
// Item is the content id when the issue is scoped to one item, empty otherwise.
type ReportIssue struct {
	Code     ReportIssueCode `json:"code"`
	Stage    StageName       `json:"stage"`
	Severity IssueSeverity   `json:"severity"`
	Item     string          `json:"item,omitempty"`
	Message  string          `json:"message"`
}

// AddIssue appends a structured issue entry.
func (r *BuildReport) AddIssue(code ReportIssueCode, stage StageName, severity IssueSeverity, item, msg string) {
	r.Issues = append(r.Issues, ReportIssue{Code: code, Stage: stage, Severity: severity, Item: item, Message: msg})
}

// StageCount aggregates counts of outcomes for a stage.
type StageCount struct {
	Success  int
	Warning  int
	Fatal    int
	Canceled int
}

func newBuildReport(buildID string) *BuildReport {
	return &BuildReport{
		SchemaVersion:   1,
		BuildID:         buildID,
		Start:           time.Now(),
		StageDurations:  make(map[string]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
	}
}

func (r *BuildReport) finish() {
	if r.End.IsZero() {
		r.End = time.Now()
	}
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("discovered=%d published=%d skipped=%d failed=%d rendered=%d stale_removed=%d duration=%s errors=%d warnings=%d outcome=%s",
		r.ItemsDiscovered, r.ItemsPublished, r.ItemsSkipped, r.ItemsFailed, r.RenderedPages, r.StaleRemoved,
		dur.Truncate(time.Millisecond), len(r.Errors), len(r.Warnings), r.Outcome)
}

// deriveOutcome sets the Outcome field based on recorded errors/warnings.
func (r *BuildReport) deriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			if se, ok := e.(*StageError); ok && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Persist writes the report atomically into the provided root directory.
// It writes two files:
//
//	build-report.json  (machine readable)
//	build-report.txt   (human summary)
//
// Best effort; errors are returned for caller logging but do not change build outcome.
func (r *BuildReport) Persist(root string) error {
	r.finish()
	if r.Outcome == "" {
		r.deriveOutcome()
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("ensure root for report: %w", err)
	}
	jb, err := json.MarshalIndent(r.sanitizedCopy(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	jsonPath := filepath.Join(root, "build-report.json")
	tmpJSON := jsonPath + ".tmp"
	if err := os.WriteFile(tmpJSON, jb, 0644); err != nil {
		return fmt.Errorf("write temp report json: %w", err)
	}
	if err := os.Rename(tmpJSON, jsonPath); err != nil {
		return fmt.Errorf("atomic rename json: %w", err)
	}
	summaryPath := filepath.Join(root, "build-report.txt")
	tmpTxt := summaryPath + ".tmp"
	if err := os.WriteFile(tmpTxt, []byte(r.Summary()+"\n"), 0644); err != nil {
		return fmt.Errorf("write temp report summary: %w", err)
	}
	if err := os.Rename(tmpTxt, summaryPath); err != nil {
		return fmt.Errorf("atomic rename summary: %w", err)
	}
	return nil
}

// sanitizedCopy returns a shallow copy with error fields converted to strings for JSON friendliness.
func (r *BuildReport) sanitizedCopy() *buildReportSerializable {
	stageCounts := make(map[string]StageCount, len(r.StageCounts))
	for k, v := range r.StageCounts {
		stageCounts[string(k)] = v
	}
	sek := make(map[string]string, len(r.StageErrorKinds))
	for k, v := range r.StageErrorKinds {
		sek[string(k)] = string(v)
	}
	if r.StageDurations == nil {
		r.StageDurations = map[string]time.Duration{}
	}
	s := &buildReportSerializable{
		SchemaVersion:   r.SchemaVersion,
		BuildID:         r.BuildID,
		Start:           r.Start,
		End:             r.End,
		ItemsDiscovered: r.ItemsDiscovered,
		ItemsPublished:  r.ItemsPublished,
		ItemsSkipped:    r.ItemsSkipped,
		ItemsFailed:     r.ItemsFailed,
		RenderedPages:   r.RenderedPages,
		StaleRemoved:    r.StaleRemoved,
		Errors:          make([]string, len(r.Errors)),
		Warnings:        make([]string, len(r.Warnings)),
		StageDurations:  r.StageDurations,
		StageErrorKinds: sek,
		StageCounts:     stageCounts,
		Outcome:         string(r.Outcome),
		Issues:          r.Issues,
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		s.Warnings[i] = w.Error()
	}
	return s
}

// buildReportSerializable mirrors BuildReport but with string errors for JSON output.
type buildReportSerializable struct {
	SchemaVersion   int                      `json:"schema_version"`
	BuildID         string                   `json:"build_id"`
	Start           time.Time                `json:"start"`
	End             time.Time                `json:"end"`
	ItemsDiscovered int                      `json:"items_discovered"`
	ItemsPublished  int                      `json:"items_published"`
	ItemsSkipped    int                      `json:"items_skipped"`
	ItemsFailed     int                      `json:"items_failed"`
	RenderedPages   int                      `json:"rendered_pages"`
	StaleRemoved    int                      `json:"stale_removed"`
	Errors          []string                 `json:"errors"`
	Warnings        []string                 `json:"warnings"`
	StageDurations  map[string]time.Duration `json:"stage_durations"`
	StageErrorKinds map[string]string        `json:"stage_error_kinds"`
	StageCounts     map[string]StageCount    `json:"stage_counts"`
	Outcome         string                   `json:"outcome"`
	Issues          []ReportIssue            `json:"issues"`
}
