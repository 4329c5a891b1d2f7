package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quicknote-be/internal/dto"
	"quicknote-be/internal/entity"
	"quicknote-be/internal/pkg/apperror"
	"quicknote-be/internal/repository/specification"
	"quicknote-be/internal/repository/unitofwork"
	"quicknote-be/pkg/events"

	"github.com/google/uuid"
)

type INoteService interface {
	List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) error
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// List returns the caller's notes, newest note date first.
func (s *noteService) List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "note_date", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, toNoteResponse(note))
	}
	return responses, nil
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.ErrInvalidTitle
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperror.ErrInvalidContent
	}

	noteDate := time.Now()
	if req.NoteDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.NoteDate)
		if err != nil {
			return nil, apperror.Validation("note_date must be RFC3339 formatted")
		}
		noteDate = parsed
	}

	note := &entity.Note{
		Id:        uuid.New(),
		Title:     title,
		Content:   content,
		NoteDate:  noteDate,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeNoteCreated, map[string]interface{}{
		"note_id": note.Id,
		"user_id": userId,
	})

	return toNoteResponse(note), nil
}

// Update replaces the note's title and content and stamps a fresh note
// date, so an edited note surfaces at the top of the list again.
func (s *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.ErrNoteNotFound
	}
	if note.UserId != userId {
		return nil, apperror.ErrUnauthorized
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.ErrInvalidTitle
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperror.ErrInvalidContent
	}

	now := time.Now()
	note.Title = title
	note.Content = content
	note.NoteDate = now
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeNoteUpdated, map[string]interface{}{
		"note_id": note.Id,
		"user_id": userId,
	})

	return toNoteResponse(note), nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return err
	}
	if note == nil {
		return apperror.ErrNoteNotFound
	}
	if note.UserId != userId {
		return apperror.ErrUnauthorized
	}

	if err := uow.NoteRepository().Delete(ctx, noteId); err != nil {
		return err
	}

	s.publishEvent(ctx, events.TypeNoteDeleted, map[string]interface{}{
		"note_id": noteId,
		"user_id": userId,
	})

	return nil
}

func (s *noteService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishEvent(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		NoteDate:  note.NoteDate,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
