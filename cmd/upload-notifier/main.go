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
	notifierInstance *services.NotifierFunction
	once             sync.Once
	initErr          error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	functions.CloudEvent("NotifyUpload", notifyUpload)
}

// main is required by the Go Functions Framework.
func main() {}

// notifyUpload is the Cloud Function entry point for upload notifications.
func notifyUpload(ctx context.Context, e cloudevents.Event) error {
	once.Do(func() {
		notifierInstance, initErr = services.NewNotifier(context.Background())
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

	return notifierInstance.Process(ctx, event)
}
