package service

import (
	"context"
	"fmt"
	"time"

	"quicknote-be/internal/pkg/apperror"
	"quicknote-be/internal/repository/contract"
	"quicknote-be/internal/repository/unitofwork"
	"quicknote-be/pkg/events"

	"github.com/google/uuid"
)

type IUserService interface {
	DeleteAccount(ctx context.Context, currentUserId uuid.UUID, targetId uuid.UUID) error
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   contract.SessionRepository
	publisher  IPublisherService
}

func NewUserService(
	uowFactory unitofwork.RepositoryFactory,
	sessions contract.SessionRepository,
	publisher IPublisherService,
) IUserService {
	return &userService{
		uowFactory: uowFactory,
		sessions:   sessions,
		publisher:  publisher,
	}
}

// DeleteAccount removes the account, its notes, and its sessions. Notes and
// the user row go in one transaction so a failure leaves both intact. Only
// the account owner may delete it.
func (s *userService) DeleteAccount(ctx context.Context, currentUserId uuid.UUID, targetId uuid.UUID) error {
	if currentUserId != targetId {
		return apperror.ErrUnauthorized
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().DeleteAllByUserId(ctx, targetId); err != nil {
		return err
	}
	if err := uow.UserRepository().Delete(ctx, targetId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	// Session revocation runs outside the transaction: the store is not
	// transactional, and a leftover session for a deleted account expires
	// on its own TTL.
	if err := s.sessions.DeleteAllByUserId(ctx, targetId); err != nil {
		fmt.Printf("[WARN] Failed to revoke sessions for deleted user %s: %v\n", targetId, err)
	}

	s.publishEvent(ctx, events.TypeUserDeleted, map[string]interface{}{
		"user_id": targetId,
	})

	return nil
}

func (s *userService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishEvent(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}
