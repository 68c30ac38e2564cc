package gcp

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"

	"github.com/Lllllllleong/docanalytics/internal/models"
)

// NewPubSubClient creates a Pub/Sub client for the given project ID.
func NewPubSubClient(ctx context.Context, projectID string) (*pubsub.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a pubsub client")
	}

	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}

	return client, nil
}

// TopicPublisher publishes to one Pub/Sub topic. It serves both hand-off
// roles of the pipeline: the analysis trigger after ingestion and the report
// delivery to subscribers. Publish blocks only on the broker's ack; whatever
// consumes the topic runs asynchronously with at-least-once delivery.
type TopicPublisher struct {
	topic *pubsub.Topic
}

func NewTopicPublisher(topic *pubsub.Topic) *TopicPublisher {
	return &TopicPublisher{topic: topic}
}

// InvokeAsync publishes the analysis trigger marker. The caller never waits
// for, or learns about, the analyzer's outcome.
func (p *TopicPublisher) InvokeAsync(ctx context.Context, trigger models.AnalysisTrigger) error {
	payload, err := json.Marshal(trigger)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis trigger: %w", err)
	}

	result := p.topic.Publish(ctx, &pubsub.Message{Data: payload})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", p.topic.ID(), err)
	}
	return nil
}

// Publish delivers a report body with a subject line carried as a message
// attribute, mirroring a notification-service publish.
func (p *TopicPublisher) Publish(ctx context.Context, subject, body string) error {
	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       []byte(body),
		Attributes: map[string]string{"subject": subject},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", p.topic.ID(), err)
	}
	return nil
}
