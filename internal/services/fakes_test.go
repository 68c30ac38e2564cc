package services_test

import (
	"context"
	"fmt"

	"github.com/Lllllllleong/docanalytics/internal/models"
)

type fakeFetcher struct {
	obj *models.StoredObject
	err error
}

func (f *fakeFetcher) Fetch(_ context.Context, _, _ string) (*models.StoredObject, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.obj, nil
}

// fakeStore mimics the create-only Firestore adapter: a second Put for the
// same documentId fails.
type fakeStore struct {
	docs    []models.Document
	putErr  error
	scanErr error
}

func (s *fakeStore) Put(_ context.Context, doc models.Document) error {
	if s.putErr != nil {
		return s.putErr
	}
	for _, existing := range s.docs {
		if existing.DocumentID == doc.DocumentID {
			return fmt.Errorf("document %s already exists", doc.DocumentID)
		}
	}
	s.docs = append(s.docs, doc)
	return nil
}

func (s *fakeStore) ScanAll(_ context.Context) ([]models.Document, error) {
	if s.scanErr != nil {
		return nil, s.scanErr
	}
	return s.docs, nil
}

type fakeRelay struct {
	triggers []models.AnalysisTrigger
	err      error
}

func (r *fakeRelay) InvokeAsync(_ context.Context, trigger models.AnalysisTrigger) error {
	if r.err != nil {
		return r.err
	}
	r.triggers = append(r.triggers, trigger)
	return nil
}

type fakePublisher struct {
	subjects []string
	bodies   []string
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, subject, body string) error {
	if p.err != nil {
		return p.err
	}
	p.subjects = append(p.subjects, subject)
	p.bodies = append(p.bodies, body)
	return nil
}

type stubDetector struct {
	code string
	ok   bool
}

func (d stubDetector) Detect(string) (string, bool) { return d.code, d.ok }
