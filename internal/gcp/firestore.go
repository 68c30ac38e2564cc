package gcp

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/Lllllllleong/docanalytics/internal/models"
)

// NewFirestoreClient creates and returns a new Firestore client for the given project ID.
// It centralizes client creation for all services.
func NewFirestoreClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return client, nil
}

// FirestoreStore persists document records in a single Firestore collection.
// It is the write-once/scan-many adapter behind the pipeline: ingestion
// creates records, analysis reads them all back.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreStore(client *firestore.Client, collection string) *FirestoreStore {
	return &FirestoreStore{client: client, collection: collection}
}

// Put creates the record under its document ID. Create (not Set) enforces
// the append-only contract: a documentId is never overwritten.
func (s *FirestoreStore) Put(ctx context.Context, doc models.Document) error {
	_, err := s.client.Collection(s.collection).Doc(doc.DocumentID).Create(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create document %s: %w", doc.DocumentID, err)
	}
	return nil
}

// ScanAll reads every record in the collection. The Firestore iterator pages
// through results transparently, so callers see one logical set. Records
// without a text field are skipped rather than failing the scan.
func (s *FirestoreStore) ScanAll(ctx context.Context) ([]models.Document, error) {
	it := s.client.Collection(s.collection).Documents(ctx)
	defer it.Stop()

	var docs []models.Document
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection %s: %w", s.collection, err)
		}
		if !recordHasText(snap.Data()) {
			slog.Warn("Skipping record without text field.", "documentId", snap.Ref.ID)
			continue
		}
		var doc models.Document
		if err := snap.DataTo(&doc); err != nil {
			slog.Warn("Skipping unreadable record.", "documentId", snap.Ref.ID, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// recordHasText reports whether a scanned record carries a text field.
// Records written by older revisions of the pipeline may lack one; the
// scan skips those instead of failing. An empty text value still counts.
func recordHasText(data map[string]interface{}) bool {
	_, ok := data["text"]
	return ok
}
