package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/Lllllllleong/docanalytics/internal/extract"
	"github.com/Lllllllleong/docanalytics/internal/gcp"
	"github.com/Lllllllleong/docanalytics/internal/models"
)

// ExtractorConfig holds configuration for the document extractor service.
type ExtractorConfig struct {
	ProjectID      string
	CollectionName string
	AnalysisTopic  string
}

// ExtractorFunction ingests one uploaded object: fetch, extract, persist,
// then hand off to analysis.
type ExtractorFunction struct {
	fetcher ObjectFetcher
	store   DocumentStore
	relay   TriggerRelay
	now     func() time.Time
}

// NewExtractor wires the extractor against GCP using environment
// configuration: PROJECT_ID, ANALYSIS_TOPIC, FIRESTORE_COLLECTION.
func NewExtractor(ctx context.Context) (*ExtractorFunction, error) {
	config := ExtractorConfig{
		ProjectID:      gcp.GetEnv("PROJECT_ID", ""),
		CollectionName: gcp.GetEnv("FIRESTORE_COLLECTION", "documents"),
		AnalysisTopic:  gcp.GetEnv("ANALYSIS_TOPIC", ""),
	}
	if config.ProjectID == "" {
		return nil, fmt.Errorf("PROJECT_ID environment variable must be set")
	}
	if config.AnalysisTopic == "" {
		return nil, fmt.Errorf("ANALYSIS_TOPIC environment variable must be set")
	}

	firestoreClient, err := gcp.NewFirestoreClient(ctx, config.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Storage client: %w", err)
	}
	pubsubClient, err := gcp.NewPubSubClient(ctx, config.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}

	f := NewExtractorWith(
		gcp.NewObjectReader(storageClient),
		gcp.NewFirestoreStore(firestoreClient, config.CollectionName),
		gcp.NewTopicPublisher(pubsubClient.Topic(config.AnalysisTopic)),
	)
	slog.Info("Document extractor initialized.", "collection", config.CollectionName, "analysisTopic", config.AnalysisTopic)
	return f, nil
}

// NewExtractorWith builds the extractor from explicit collaborators.
func NewExtractorWith(fetcher ObjectFetcher, store DocumentStore, relay TriggerRelay) *ExtractorFunction {
	return &ExtractorFunction{
		fetcher: fetcher,
		store:   store,
		relay:   relay,
		now:     time.Now,
	}
}

// Process handles one object-finalization event. The record write must
// commit before the relay fires; a relay failure after the commit is a
// partial success, reported in the result and never rolled back.
func (f *ExtractorFunction) Process(ctx context.Context, e models.StorageEvent) (*models.IngestResult, error) {
	logCtx := slog.With("gcsBucket", e.Bucket, "gcsObject", e.Name)

	if e.Bucket == "" || e.Name == "" {
		logCtx.Error("Rejected malformed storage event.")
		return &models.IngestResult{Status: StatusError, Message: "bucket and object name are required"},
			fmt.Errorf("%w: bucket and object name are required", ErrInvalidEvent)
	}
	logCtx.Info("Processing new storage object.")

	obj, err := f.fetcher.Fetch(ctx, e.Bucket, e.Name)
	if err != nil {
		logCtx.Error("Failed to fetch object", "error", err)
		return &models.IngestResult{Status: StatusError, Message: "object retrieval failed"},
			fmt.Errorf("%w: %v", ErrRetrieval, err)
	}

	format := extract.DetectFormat(e.Name)
	result := extract.File(obj.Data, format)
	if result.Text == "" {
		// Not an error: empty or image-only content is a normal outcome.
		logCtx.Warn("Extraction yielded no text.", "format", string(format))
	}

	doc := models.Document{
		DocumentID:  uuid.NewString(),
		SourceName:  e.Name,
		Text:        result.Text,
		SizeBytes:   obj.Size,
		PageCount:   result.Pages,
		ContentHash: contentHash(obj.Data),
		UploadedAt:  obj.LastModified,
		IngestedAt:  f.now().UTC(),
	}
	logCtx = logCtx.With("documentId", doc.DocumentID)

	if err := f.store.Put(ctx, doc); err != nil {
		logCtx.Error("Failed to persist document", "error", err)
		return &models.IngestResult{Status: StatusError, Message: "failed to persist document"},
			fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	logCtx.Info("Document persisted.", "sizeBytes", doc.SizeBytes, "pageCount", doc.PageCount)

	trigger := models.AnalysisTrigger{
		SourceEvent: "document_extraction_complete",
		DocumentID:  doc.DocumentID,
	}
	if err := f.relay.InvokeAsync(ctx, trigger); err != nil {
		// The record is committed; analysis simply was not kicked off this
		// time. The next successful ingestion will pick this document up.
		logCtx.Warn("Persisted but failed to trigger analysis.", "error", err)
		return &models.IngestResult{
			Status:     StatusSuccess,
			DocumentID: doc.DocumentID,
			Message:    "persisted but failed to trigger analysis",
		}, nil
	}

	logCtx.Info("Hand-off to analysis complete.")
	return &models.IngestResult{
		Status:            StatusSuccess,
		DocumentID:        doc.DocumentID,
		AnalysisTriggered: true,
	}, nil
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
