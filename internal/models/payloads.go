package models

// These structs define the event and result payloads exchanged between the
// Cloud Functions and their triggers.

// StorageEvent is the data payload of a GCS object-finalization CloudEvent.
type StorageEvent struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

// AnalysisTrigger is the marker published to the analysis topic after a
// successful ingestion. The analyzer ignores its content; it only matters
// that a message arrived.
type AnalysisTrigger struct {
	SourceEvent string `json:"sourceEvent"`
	DocumentID  string `json:"documentId,omitempty"`
}

// PubSubEvent is the CloudEvent data envelope for a Pub/Sub-triggered
// function (google.cloud.pubsub.topic.v1.messagePublished).
type PubSubEvent struct {
	Message struct {
		Data       []byte            `json:"data"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// IngestResult is returned by the extractor function.
type IngestResult struct {
	Status            string `json:"status"`
	DocumentID        string `json:"documentId,omitempty"`
	AnalysisTriggered bool   `json:"analysisTriggered"`
	Message           string `json:"message,omitempty"`
}

// AnalyzeResult is returned by the analyzer function. Report carries the
// rendered report text even when publishing failed, so callers can log or
// retry delivery on their own.
type AnalyzeResult struct {
	Status    string `json:"status"`
	TotalDocs int    `json:"totalDocs"`
	Report    string `json:"report,omitempty"`
}
