package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/docanalytics/internal/models"
	"github.com/Lllllllleong/docanalytics/internal/services"
)

func record(id, text string) models.Document {
	return models.Document{
		DocumentID: id,
		SourceName: id + ".txt",
		Text:       text,
		IngestedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// stripTimestamp removes the only line that legitimately varies between two
// runs over the same corpus.
func stripTimestamp(report string) string {
	lines := strings.Split(report, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, "Generated At: ") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func TestProcessPublishesReport(t *testing.T) {
	store := &fakeStore{docs: []models.Document{record("d1", "Hello hello WORLD")}}
	publisher := &fakePublisher{}
	f := services.NewAnalyzerWith(store, publisher, stubDetector{code: "en", ok: true})

	result, err := f.Process(context.Background())
	require.NoError(t, err)
	require.Equal(t, services.StatusSuccess, result.Status)
	require.Equal(t, 1, result.TotalDocs)

	require.Len(t, publisher.bodies, 1)
	body := publisher.bodies[0]
	require.Contains(t, body, "Documents Scanned: 1")
	require.Contains(t, body, "Language: en")
	require.Contains(t, body, "hello: 2\nworld: 1\n")
	require.Equal(t, []string{"Document Analysis Report (1 document)"}, publisher.subjects)
	require.Equal(t, body, result.Report)
}

func TestProcessEmptyCorpus(t *testing.T) {
	publisher := &fakePublisher{}
	f := services.NewAnalyzerWith(&fakeStore{}, publisher, stubDetector{})

	result, err := f.Process(context.Background())
	require.NoError(t, err)
	require.Equal(t, services.StatusSuccess, result.Status)
	require.Zero(t, result.TotalDocs)

	require.Len(t, publisher.bodies, 1)
	body := publisher.bodies[0]
	require.Contains(t, body, "Documents Scanned: 0")
	require.Contains(t, body, "Language: unknown")
	require.True(t, strings.HasSuffix(body, "Top 10 Words:\n"))
}

func TestProcessIsIdempotentForFixedCorpus(t *testing.T) {
	store := &fakeStore{docs: []models.Document{
		record("d1", "alpha beta beta"),
		record("d2", "gamma alpha"),
	}}
	publisher := &fakePublisher{}
	f := services.NewAnalyzerWith(store, publisher, stubDetector{code: "en", ok: true})

	_, err := f.Process(context.Background())
	require.NoError(t, err)
	_, err = f.Process(context.Background())
	require.NoError(t, err)

	require.Len(t, publisher.bodies, 2)
	require.Equal(t, stripTimestamp(publisher.bodies[0]), stripTimestamp(publisher.bodies[1]))
	require.Equal(t, "Document Analysis Report (2 documents)", publisher.subjects[0])
}

func TestProcessTieBreakSpansRecords(t *testing.T) {
	// Records concatenate in scan order, so "b" is seen before "a" and wins
	// the tie.
	store := &fakeStore{docs: []models.Document{
		record("d1", "b b"),
		record("d2", "a a"),
	}}
	publisher := &fakePublisher{}
	f := services.NewAnalyzerWith(store, publisher, stubDetector{})

	_, err := f.Process(context.Background())
	require.NoError(t, err)
	require.Contains(t, publisher.bodies[0], "b: 2\na: 2\n")
}

func TestProcessDetectorFailureFallsBackToUnknown(t *testing.T) {
	store := &fakeStore{docs: []models.Document{record("d1", "short")}}
	publisher := &fakePublisher{}
	f := services.NewAnalyzerWith(store, publisher, stubDetector{})

	result, err := f.Process(context.Background())
	require.NoError(t, err)
	require.Equal(t, services.StatusSuccess, result.Status)
	require.Contains(t, publisher.bodies[0], "Language: unknown")
}

func TestProcessScanFailure(t *testing.T) {
	f := services.NewAnalyzerWith(&fakeStore{scanErr: errors.New("backend down")}, &fakePublisher{}, stubDetector{})

	result, err := f.Process(context.Background())
	require.Error(t, err)
	require.Equal(t, services.StatusError, result.Status)
}

func TestProcessPublishFailureKeepsReport(t *testing.T) {
	store := &fakeStore{docs: []models.Document{record("d1", "words words words")}}
	f := services.NewAnalyzerWith(store, &fakePublisher{err: errors.New("topic gone")}, stubDetector{})

	result, err := f.Process(context.Background())
	require.ErrorIs(t, err, services.ErrPublish)
	require.Equal(t, services.StatusError, result.Status)
	require.Equal(t, 1, result.TotalDocs)
	// The computed report survives the failed delivery.
	require.Contains(t, result.Report, "words: 3")
}
