package models

import "time"

// Document is the persisted record for one ingested file in Firestore.
// A record is written exactly once, at ingestion time, and never mutated;
// the analyzer only reads.
type Document struct {
	DocumentID  string    `firestore:"documentId"`
	SourceName  string    `firestore:"sourceName"`
	Text        string    `firestore:"text"`
	SizeBytes   int64     `firestore:"sizeBytes"`
	PageCount   int       `firestore:"pageCount,omitempty"`
	ContentHash string    `firestore:"contentHash,omitempty"`
	UploadedAt  time.Time `firestore:"uploadedAt,omitempty"`
	IngestedAt  time.Time `firestore:"ingestedAt"`
}

// StoredObject is one raw uploaded object plus its retrieval metadata.
type StoredObject struct {
	Data         []byte
	Size         int64
	LastModified time.Time
}

// TermCount is one entry of a frequency ranking.
type TermCount struct {
	Term  string
	Count int
}

// AnalysisReport is the result of one full-corpus analysis run. It is
// rebuilt from scratch on every run and never persisted.
type AnalysisReport struct {
	GeneratedAt   time.Time
	DocumentCount int
	Language      string
	TopTerms      []TermCount
}
