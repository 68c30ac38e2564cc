package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/Lllllllleong/docanalytics/internal/models"
	"github.com/Lllllllleong/docanalytics/internal/services"
)

var (
	analyzerInstance *services.AnalyzerFunction
	once             sync.Once
	initErr          error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Register the CloudEvent function. The framework routes Pub/Sub
	// message-published events here.
	functions.CloudEvent("AnalyzeCorpus", analyzeCorpus)
}

// main is required by the Go Functions Framework.
func main() {}

// analyzeCorpus is the Cloud Function entry point for analysis. The trigger
// message is a marker only; its content is ignored, and redundant deliveries
// just recompute the same report.
func analyzeCorpus(ctx context.Context, e cloudevents.Event) error {
	once.Do(func() {
		analyzerInstance, initErr = services.NewAnalyzer(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	var event models.PubSubEvent
	if err := json.Unmarshal(e.Data(), &event); err != nil {
		// A malformed envelope still means "run the analysis": the payload
		// carries no information the scan does not.
		slog.Warn("Could not decode trigger envelope; proceeding.", "error", err)
	}

	result, err := analyzerInstance.Process(ctx)
	if err != nil {
		return err
	}

	slog.Info("Analysis finished.", "status", result.Status, "totalDocs", result.TotalDocs)
	return nil
}
