package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/Lllllllleong/docanalytics/internal/models"
	"github.com/Lllllllleong/docanalytics/internal/services"
)

var (
	extractorInstance *services.ExtractorFunction
	once              sync.Once
	initErr           error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Register the CloudEvent function. The framework routes GCS
	// object-finalization events here.
	functions.CloudEvent("ExtractDocument", extractDocument)
}

// main is required by the Go Functions Framework.
func main() {}

// extractDocument is the Cloud Function entry point for ingestion.
func extractDocument(ctx context.Context, e cloudevents.Event) error {
	// Use sync.Once for robust, one-time initialization of clients.
	once.Do(func() {
		extractorInstance, initErr = services.NewExtractor(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	var event models.StorageEvent
	if err := json.Unmarshal(e.Data(), &event); err != nil {
		slog.Error("Failed to unmarshal event data", "error", err, "data", string(e.Data()))
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	result, err := extractorInstance.Process(ctx, event)
	if err != nil {
		// The error is already logged with context within Process.
		return err
	}

	slog.Info(
		"Ingestion finished.",
		"status", result.Status,
		"documentId", result.DocumentID,
		"analysisTriggered", result.AnalysisTriggered,
	)
	return nil
}
