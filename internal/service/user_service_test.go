package service

import (
	"context"
	"testing"

	"quicknote-be/internal/dto"
	"quicknote-be/internal/pkg/apperror"
	"quicknote-be/internal/repository/specification"
	"quicknote-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteAccountCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.auth.Register(ctx, validRegisterRequest())
	require.NoError(t, err)
	userId := res.User.Id
	sid := sessionIdFromToken(t, res.AccessToken)

	for i := 0; i < 3; i++ {
		_, err := env.notes.Create(ctx, userId, &dto.CreateNoteRequest{Title: "Note", Content: "Content"})
		require.NoError(t, err)
	}

	require.NoError(t, env.users.DeleteAccount(ctx, userId, userId))

	// Account row is gone
	uow := env.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	require.NoError(t, err)
	assert.Nil(t, user)

	// Notes are gone
	count, err := uow.NoteRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	require.NoError(t, err)
	assert.Zero(t, count)

	// Sessions are revoked
	current, err := env.auth.CurrentUser(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, current)

	// The freed email can be registered again
	_, err = env.auth.Register(ctx, validRegisterRequest())
	assert.NoError(t, err)

	assert.Contains(t, env.publisher.eventTypes(), events.TypeUserDeleted)
}

func TestDeleteAccountRevokesAllSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.auth.Register(ctx, validRegisterRequest())
	require.NoError(t, err)
	second, err := env.auth.Login(ctx, &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	require.NoError(t, env.users.DeleteAccount(ctx, first.User.Id, first.User.Id))

	for _, token := range []string{first.AccessToken, second.AccessToken} {
		user, err := env.auth.CurrentUser(ctx, sessionIdFromToken(t, token))
		require.NoError(t, err)
		assert.Nil(t, user)
	}
}

func TestDeleteAccountOnlySelf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := registerUser(t, env, "alice@example.com")
	bob := registerUser(t, env, "bob@example.com")

	err := env.users.DeleteAccount(ctx, bob, alice)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	// Alice is untouched
	uow := env.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: alice})
	require.NoError(t, err)
	assert.NotNil(t, user)
}

func TestDeleteAccountLeavesOtherUsersNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := registerUser(t, env, "alice@example.com")
	bob := registerUser(t, env, "bob@example.com")

	_, err := env.notes.Create(ctx, alice, &dto.CreateNoteRequest{Title: "Hers", Content: "Stays"})
	require.NoError(t, err)
	_, err = env.notes.Create(ctx, bob, &dto.CreateNoteRequest{Title: "His", Content: "Goes"})
	require.NoError(t, err)

	require.NoError(t, env.users.DeleteAccount(ctx, bob, bob))

	list, err := env.notes.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Hers", list[0].Title)
}

func TestDeleteAccountUnknownTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Deleting an id that is not the caller's is always denied, even when
	// no such account exists
	alice := registerUser(t, env, "alice@example.com")
	err := env.users.DeleteAccount(ctx, alice, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
