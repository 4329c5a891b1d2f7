package service

import (
	"context"
	"encoding/json"
	"fmt"

	"quicknote-be/pkg/events"
	pktNats "quicknote-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishEvent(ctx context.Context, event events.Event) error
}

// publisherService fans domain events out to the in-process bus (audit
// consumer) and, when connected, to NATS for external consumers. NATS
// delivery is best effort and never fails the request.
type publisherService struct {
	topicName     string
	pubSub        *gochannel.GoChannel
	natsPublisher *pktNats.Publisher
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel, natsPublisher *pktNats.Publisher) IPublisherService {
	return &publisherService{
		topicName:     topicName,
		pubSub:        pubSub,
		natsPublisher: natsPublisher,
	}
}

func (s *publisherService) PublishEvent(ctx context.Context, event events.Event) error {
	payload := events.BaseEvent{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		return err
	}

	if s.natsPublisher != nil {
		if err := s.natsPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event to NATS: %v\n", event.EventType(), err)
		}
	}

	return nil
}
