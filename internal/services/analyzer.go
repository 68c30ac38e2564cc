package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Lllllllleong/docanalytics/internal/analysis"
	"github.com/Lllllllleong/docanalytics/internal/gcp"
	"github.com/Lllllllleong/docanalytics/internal/models"
)

// AnalyzerConfig holds configuration for the corpus analyzer service.
type AnalyzerConfig struct {
	ProjectID      string
	CollectionName string
	ReportTopic    string
}

// AnalyzerFunction rescans the full corpus and publishes a fresh report.
// It keeps no state between invocations, so redundant triggers are safe:
// the same corpus always produces the same report, timestamp aside.
type AnalyzerFunction struct {
	store     DocumentStore
	publisher ReportPublisher
	detector  analysis.Detector
	now       func() time.Time
}

// NewAnalyzer wires the analyzer against GCP using environment
// configuration: PROJECT_ID, REPORT_TOPIC, FIRESTORE_COLLECTION. The
// language detector is built once here; it is expensive to construct.
func NewAnalyzer(ctx context.Context) (*AnalyzerFunction, error) {
	config := AnalyzerConfig{
		ProjectID:      gcp.GetEnv("PROJECT_ID", ""),
		CollectionName: gcp.GetEnv("FIRESTORE_COLLECTION", "documents"),
		ReportTopic:    gcp.GetEnv("REPORT_TOPIC", ""),
	}
	if config.ProjectID == "" {
		return nil, fmt.Errorf("PROJECT_ID environment variable must be set")
	}
	if config.ReportTopic == "" {
		return nil, fmt.Errorf("REPORT_TOPIC environment variable must be set")
	}

	firestoreClient, err := gcp.NewFirestoreClient(ctx, config.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	pubsubClient, err := gcp.NewPubSubClient(ctx, config.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}

	f := NewAnalyzerWith(
		gcp.NewFirestoreStore(firestoreClient, config.CollectionName),
		gcp.NewTopicPublisher(pubsubClient.Topic(config.ReportTopic)),
		analysis.NewDetector(),
	)
	slog.Info("Corpus analyzer initialized.", "collection", config.CollectionName, "reportTopic", config.ReportTopic)
	return f, nil
}

// NewAnalyzerWith builds the analyzer from explicit collaborators.
func NewAnalyzerWith(store DocumentStore, publisher ReportPublisher, detector analysis.Detector) *AnalyzerFunction {
	return &AnalyzerFunction{
		store:     store,
		publisher: publisher,
		detector:  detector,
		now:       time.Now,
	}
}

// Process scans every persisted record, computes the report, and publishes
// it. On publish failure the rendered report still comes back in the result
// so the caller can log or retry delivery independently.
func (f *AnalyzerFunction) Process(ctx context.Context) (*models.AnalyzeResult, error) {
	docs, err := f.store.ScanAll(ctx)
	if err != nil {
		slog.Error("Failed to scan document corpus", "error", err)
		return &models.AnalyzeResult{Status: StatusError}, fmt.Errorf("failed to scan corpus: %w", err)
	}

	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		texts = append(texts, doc.Text)
	}
	corpus := strings.Join(texts, " ")

	report := models.AnalysisReport{
		GeneratedAt:   f.now().UTC(),
		DocumentCount: len(docs),
		Language:      analysis.DetectOrUnknown(f.detector, corpus),
		TopTerms:      analysis.TopTerms(corpus, analysis.TopTermCount),
	}
	body := analysis.Render(report)
	slog.Info("Corpus analyzed.", "documentCount", report.DocumentCount, "language", report.Language)

	if err := f.publisher.Publish(ctx, reportSubject(report.DocumentCount), body); err != nil {
		slog.Error("Failed to publish report", "error", err)
		return &models.AnalyzeResult{Status: StatusError, TotalDocs: report.DocumentCount, Report: body},
			fmt.Errorf("%w: %v", ErrPublish, err)
	}

	slog.Info("Report published.")
	return &models.AnalyzeResult{Status: StatusSuccess, TotalDocs: report.DocumentCount, Report: body}, nil
}

func reportSubject(count int) string {
	noun := "documents"
	if count == 1 {
		noun = "document"
	}
	return fmt.Sprintf("Document Analysis Report (%d %s)", count, noun)
}
