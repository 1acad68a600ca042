package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/tdp-hub/tdp-report-services/models"
)

const ReportFileCreated = "report_file.created"

// Notifier announces report file changes to other services.
type Notifier interface {
	Notify(ctx context.Context, event models.ReportFileEvent) error
	Close()
}

type EventPublisher struct {
	client   pulsar.Client
	producer pulsar.Producer
}

// NewEventPublisher initializes the Pulsar client and producer.
func NewEventPublisher(pulsarURL, topic string) (*EventPublisher, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{
		URL:               pulsarURL,
		OperationTimeout:  30 * time.Second,
		ConnectionTimeout: 30 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	producer, err := client.CreateProducer(pulsar.ProducerOptions{
		Topic: topic,
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar producer: %w", err)
	}

	return &EventPublisher{client: client, producer: producer}, nil
}

// Notify publishes an event keyed by its STT so events for one STT stay ordered.
func (p *EventPublisher) Notify(ctx context.Context, event models.ReportFileEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not serialize event payload: %w", err)
	}

	_, err = p.producer.Send(ctx, &pulsar.ProducerMessage{
		Key:     fmt.Sprintf("stt-%d", event.STT),
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("could not send event to Pulsar: %w", err)
	}
	return nil
}

// Close cleans up the Pulsar producer and client.
func (p *EventPublisher) Close() {
	p.producer.Close()
	p.client.Close()
}

// NopNotifier discards events. It is used when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, models.ReportFileEvent) error { return nil }

func (NopNotifier) Close() {}

// NewReportFileEvent builds the creation event for a stored report file.
func NewReportFileEvent(rf *models.ReportFile) models.ReportFileEvent {
	return models.ReportFileEvent{
		Type:       ReportFileCreated,
		ReportFile: rf.ID,
		STT:        rf.STT,
		Year:       rf.Year,
		Quarter:    rf.Quarter,
		Section:    rf.Section,
		Version:    rf.Version,
		User:       rf.User,
		Timestamp:  rf.CreatedAt.Unix(),
	}
}
