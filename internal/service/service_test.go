package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"quicknote-be/internal/model"
	"quicknote-be/internal/repository/memory"
	"quicknote-be/internal/repository/unitofwork"
	"quicknote-be/pkg/events"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

// newTestDB opens a private in-memory database per test so the real
// repository and unit-of-work stack runs without a server.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Note{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturePublisher) PublishEvent(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}

type testEnv struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *memory.SessionRepository
	publisher  *capturePublisher
	auth       IAuthService
	notes      INoteService
	users      IUserService
}

const testJWTSecret = "test-secret"

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sessions := memory.NewSessionRepository(time.Hour)
	publisher := &capturePublisher{}

	return &testEnv{
		uowFactory: uowFactory,
		sessions:   sessions,
		publisher:  publisher,
		auth:       NewAuthService(uowFactory, sessions, publisher, testJWTSecret, time.Hour),
		notes:      NewNoteService(uowFactory, publisher),
		users:      NewUserService(uowFactory, sessions, publisher),
	}
}
