package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lllllllleong/docanalytics/internal/gcp"
	"github.com/Lllllllleong/docanalytics/internal/models"
)

// NotifierFunction announces freshly uploaded objects to subscribers. It
// performs no writes and no analysis hand-off; it only publishes.
type NotifierFunction struct {
	publisher ReportPublisher
}

// NewNotifier wires the notifier against GCP using environment
// configuration: PROJECT_ID, REPORT_TOPIC.
func NewNotifier(ctx context.Context) (*NotifierFunction, error) {
	projectID := gcp.GetEnv("PROJECT_ID", "")
	if projectID == "" {
		return nil, fmt.Errorf("PROJECT_ID environment variable must be set")
	}
	reportTopic := gcp.GetEnv("REPORT_TOPIC", "")
	if reportTopic == "" {
		return nil, fmt.Errorf("REPORT_TOPIC environment variable must be set")
	}

	pubsubClient, err := gcp.NewPubSubClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}

	slog.Info("Upload notifier initialized.", "reportTopic", reportTopic)
	return NewNotifierWith(gcp.NewTopicPublisher(pubsubClient.Topic(reportTopic))), nil
}

// NewNotifierWith builds the notifier from an explicit publisher.
func NewNotifierWith(publisher ReportPublisher) *NotifierFunction {
	return &NotifierFunction{publisher: publisher}
}

// Process publishes an upload notification for one finalized object.
func (f *NotifierFunction) Process(ctx context.Context, e models.StorageEvent) error {
	if e.Bucket == "" || e.Name == "" {
		return fmt.Errorf("%w: bucket and object name are required", ErrInvalidEvent)
	}

	body := fmt.Sprintf(
		"File Uploaded\nBucket: %s\nObject: %s\n\nThe document will now be extracted and analyzed automatically.\n",
		e.Bucket, e.Name,
	)
	if err := f.publisher.Publish(ctx, "New document uploaded", body); err != nil {
		slog.Error("Failed to publish upload notification", "error", err, "gcsObject", e.Name)
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	slog.Info("Upload notification published.", "gcsBucket", e.Bucket, "gcsObject", e.Name)
	return nil
}
