package orders

import (
	"context"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

const outboxBatchSize = 100

// EventWriter is the Kafka producer surface the poller needs.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OutboxPoller drains unpublished order events from the database to Kafka.
// Events stay in the outbox until both the publish and the mark succeed, so
// consumers must tolerate duplicates.
type OutboxPoller struct {
	tick   time.Duration
	repo   OrderRepository
	writer EventWriter
}

func NewOutboxPoller(repo OrderRepository, brokers ...string) *OutboxPoller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &OutboxPoller{tick: time.Second, repo: repo, writer: w}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) Close() {
	if w, ok := p.writer.(*kafka.Writer); ok {
		if err := w.Close(); err != nil {
			log.Printf("error closing kafka writer: %v", err)
		}
	}
}

func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) {
	events, err := p.repo.GetUnpublishedEvents(ctx, outboxBatchSize)
	if err != nil {
		log.Printf("failed to fetch outbox events: %v", err)
		return
	}

	for _, event := range events {
		errPublish := p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(event.EventType),
			Value: event.Payload,
		})
		if errPublish != nil {
			log.Printf("failed to publish event id = %v with error %v", event.ID, errPublish)
			continue
		}

		errMark := p.repo.MarkEventPublished(ctx, event.ID)
		if errMark != nil {
			log.Printf("failed to mark event as published id = %v with error %v", event.ID, errMark)
			continue
		}
	}
}
