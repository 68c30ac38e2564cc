package services

import (
	"context"
	"errors"

	"github.com/Lllllllleong/docanalytics/internal/models"
)

// Result status values returned by the function entrypoints.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// The pipeline's failure taxonomy. Everything the services return wraps one
// of these, so callers can match with errors.Is. A relay failure after a
// committed write is deliberately absent: it is reported inside the result,
// never as an error.
var (
	ErrInvalidEvent = errors.New("invalid storage event")
	ErrRetrieval    = errors.New("object retrieval failed")
	ErrPersistence  = errors.New("document write failed")
	ErrPublish      = errors.New("report publish failed")
)

// ObjectFetcher retrieves raw uploaded bytes and metadata from object storage.
type ObjectFetcher interface {
	Fetch(ctx context.Context, bucket, name string) (*models.StoredObject, error)
}

// DocumentStore is the persistence layer for extracted documents: write one
// record, or scan them all. Scans are read-committed-at-scan-time; a scan
// racing an in-flight ingestion may or may not see that record.
type DocumentStore interface {
	Put(ctx context.Context, doc models.Document) error
	ScanAll(ctx context.Context) ([]models.Document, error)
}

// TriggerRelay hands off from ingestion to analysis: asynchronous,
// at-least-once, marker payload only. The producer never awaits the
// consumer's outcome.
type TriggerRelay interface {
	InvokeAsync(ctx context.Context, trigger models.AnalysisTrigger) error
}

// ReportPublisher delivers a finished report to subscribers.
type ReportPublisher interface {
	Publish(ctx context.Context, subject, body string) error
}
