package unitofwork

import (
	"context"

	"quicknote-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to a single logical operation. One
// operation = one transaction: callers either run repository calls directly
// (GORM makes a single statement atomic) or wrap multi-statement work in
// Begin/Commit, e.g. the account delete cascade.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NoteRepository() contract.NoteRepository
}
