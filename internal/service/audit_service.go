package service

import (
	"context"
	"encoding/json"
	"log"

	"quicknote-be/internal/pkg/logger"
	"quicknote-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IAuditService interface {
	Consume(ctx context.Context) error
}

// auditService subscribes to the domain event bus and writes a structured
// audit trail through the system logger.
type auditService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewAuditService(pubSub *gochannel.GoChannel, topicName string, sysLogger logger.ILogger) IAuditService {
	return &auditService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    sysLogger,
	}
}

func (s *auditService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *auditService) processMessage(msg *message.Message) {
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		// Ack invalid messages to prevent infinite retry
		log.Printf("[ERROR] Failed to unmarshal audit event: %v", err)
		msg.Ack()
		return
	}

	s.logger.Info("audit", event.Type, event.Data)
	msg.Ack()
}
