package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prashsamosa/web-analytics-service/internal/events/core/domain"
	"github.com/prashsamosa/web-analytics-service/internal/events/core/ports"
	"github.com/prashsamosa/web-analytics-service/internal/events/core/usecase"
)

// Fake repository implementing EventRepositoryPort
type fakeEventRepo struct {
	InsertFn  func(ctx context.Context, e *domain.Event) error
	GetByIDFn func(ctx context.Context, eventID string) (*domain.Event, error)
	ListFn    func(ctx context.Context, f ports.ListFilter) ([]domain.Event, error)
}

func (f *fakeEventRepo) Insert(ctx context.Context, e *domain.Event) error {
	return f.InsertFn(ctx, e)
}

func (f *fakeEventRepo) GetByID(ctx context.Context, eventID string) (*domain.Event, error) {
	return f.GetByIDFn(ctx, eventID)
}

func (f *fakeEventRepo) List(ctx context.Context, fl ports.ListFilter) ([]domain.Event, error) {
	return f.ListFn(ctx, fl)
}

// ------------------------------------------------------------
// SUCCESS
// ------------------------------------------------------------

func TestSubmitEvent_Success(t *testing.T) {
	var stored *domain.Event

	repo := &fakeEventRepo{
		InsertFn: func(ctx context.Context, e *domain.Event) error {
			stored = e
			return nil
		},
	}

	uc := usecase.NewIngestEventUseCase(repo)

	before := time.Now().UTC()
	id, err := uc.Execute(context.Background(), usecase.SubmitEventInput{
		UserID:    "user_123",
		EventType: "view",
		Payload:   json.RawMessage(`{"url": "https://example.com/home"}`),
	})
	after := time.Now().UTC()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatalf("repository Insert was not called")
	}
	if id == "" || id != stored.EventID {
		t.Fatalf("expected returned id to match stored id, got %q / %q", id, stored.EventID)
	}
	if stored.UserID != "user_123" {
		t.Errorf("expected user 'user_123', got %s", stored.UserID)
	}
	if stored.EventType != domain.EventTypeView {
		t.Errorf("expected type view, got %s", stored.EventType)
	}
	if stored.Timestamp.Before(before) || stored.Timestamp.After(after) {
		t.Errorf("expected server-assigned timestamp between %v and %v, got %v", before, after, stored.Timestamp)
	}
}

func TestSubmitEvent_SuppliedTimestamp(t *testing.T) {
	var stored *domain.Event

	repo := &fakeEventRepo{
		InsertFn: func(ctx context.Context, e *domain.Event) error {
			stored = e
			return nil
		},
	}

	uc := usecase.NewIngestEventUseCase(repo)

	ts := time.Date(2025, 5, 1, 10, 30, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), usecase.SubmitEventInput{
		UserID:    "user_123",
		EventType: "click",
		Payload:   json.RawMessage(`{}`),
		Timestamp: &ts,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.Timestamp.Equal(ts) {
		t.Fatalf("expected supplied timestamp %v, got %v", ts, stored.Timestamp)
	}
}

func TestSubmitEvent_PayloadStoredVerbatim(t *testing.T) {
	var stored *domain.Event

	repo := &fakeEventRepo{
		InsertFn: func(ctx context.Context, e *domain.Event) error {
			stored = e
			return nil
		},
	}

	uc := usecase.NewIngestEventUseCase(repo)

	raw := json.RawMessage(`{"url": "/home", "campaign": "spring"}`)
	if _, err := uc.Execute(context.Background(), usecase.SubmitEventInput{
		UserID:    "user_123",
		EventType: "view",
		Payload:   raw,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(stored.Payload) != string(raw) {
		t.Fatalf("expected payload stored unchanged, got %s", stored.Payload)
	}
}

// ------------------------------------------------------------
// CLIENT-INPUT ERRORS
// ------------------------------------------------------------

func TestSubmitEvent_EmptyUserID(t *testing.T) {
	repo := &fakeEventRepo{
		InsertFn: func(ctx context.Context, e *domain.Event) error {
			t.Fatalf("Insert must not be called for invalid input")
			return nil
		},
	}

	uc := usecase.NewIngestEventUseCase(repo)

	_, err := uc.Execute(context.Background(), usecase.SubmitEventInput{
		UserID:    "",
		EventType: "view",
		Payload:   json.RawMessage(`{"url": "/home"}`),
	})
	if !errors.Is(err, usecase.ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestSubmitEvent_UnknownEventType(t *testing.T) {
	repo := &fakeEventRepo{
		InsertFn: func(ctx context.Context, e *domain.Event) error {
			t.Fatalf("Insert must not be called for unknown event type")
			return nil
		},
	}

	uc := usecase.NewIngestEventUseCase(repo)

	_, err := uc.Execute(context.Background(), usecase.SubmitEventInput{
		UserID:    "user_123",
		EventType: "survey",
		Payload:   json.RawMessage(`{}`),
	})
	if !errors.Is(err, domain.ErrUnknownEventType) {
		t.Fatalf("expected ErrUnknownEventType, got %v", err)
	}
}

func TestSubmitEvent_SchemaViolationPropagated(t *testing.T) {
	repo := &fakeEventRepo{
		InsertFn: func(ctx context.Context, e *domain.Event) error {
			t.Fatalf("Insert must not be called for invalid payload")
			return nil
		},
	}

	uc := usecase.NewIngestEventUseCase(repo)

	_, err := uc.Execute(context.Background(), usecase.SubmitEventInput{
		UserID:    "user_123",
		EventType: "location",
		Payload:   json.RawMessage(`{"latitude": 91, "longitude": 0}`),
	})

	var sv *domain.SchemaViolationError
	if !errors.As(err, &sv) {
		t.Fatalf("expected SchemaViolationError, got %v", err)
	}
	if sv.Field != "latitude" {
		t.Fatalf("expected violation on latitude, got %s", sv.Field)
	}
}

// ------------------------------------------------------------
// IDENTITY COLLISION
// ------------------------------------------------------------

func TestSubmitEvent_CollisionRetriedOnce(t *testing.T) {
	var ids []string

	repo := &fakeEventRepo{
		InsertFn: func(ctx context.Context, e *domain.Event) error {
			ids = append(ids, e.EventID)
			if len(ids) == 1 {
				return ports.ErrDuplicateKey
			}
			return nil
		},
	}

	uc := usecase.NewIngestEventUseCase(repo)

	id, err := uc.Execute(context.Background(), usecase.SubmitEventInput{
		UserID:    "user_123",
		EventType: "click",
		Payload:   json.RawMessage(`{}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected exactly 2 insert attempts, got %d", len(ids))
	}
	if ids[0] == ids[1] {
		t.Fatalf("expected a fresh id on retry")
	}
	if id != ids[1] {
		t.Fatalf("expected the retried id to be returned")
	}
}

func TestSubmitEvent_SecondCollisionEscalates(t *testing.T) {
	attempts := 0

	repo := &fakeEventRepo{
		InsertFn: func(ctx context.Context, e *domain.Event) error {
			attempts++
			return ports.ErrDuplicateKey
		},
	}

	uc := usecase.NewIngestEventUseCase(repo)

	_, err := uc.Execute(context.Background(), usecase.SubmitEventInput{
		UserID:    "user_123",
		EventType: "click",
		Payload:   json.RawMessage(`{}`),
	})
	if !errors.Is(err, usecase.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected exactly 2 attempts, got %d", attempts)
	}
}

// ------------------------------------------------------------
// STORAGE ERROR
// ------------------------------------------------------------

func TestSubmitEvent_RepositoryError(t *testing.T) {
	repo := &fakeEventRepo{
		InsertFn: func(ctx context.Context, e *domain.Event) error {
			return errors.New("connection refused")
		},
	}

	uc := usecase.NewIngestEventUseCase(repo)

	_, err := uc.Execute(context.Background(), usecase.SubmitEventInput{
		UserID:    "user_123",
		EventType: "view",
		Payload:   json.RawMessage(`{"url": "/home"}`),
	})
	if !errors.Is(err, usecase.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

// ------------------------------------------------------------
// CONCURRENT SUBMISSION
// ------------------------------------------------------------

// memEventRepo is a mutex-guarded in-memory store used to exercise the
// ingestion path under concurrency.
type memEventRepo struct {
	mu     sync.Mutex
	events map[string]*domain.Event
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: make(map[string]*domain.Event)}
}

func (m *memEventRepo) Insert(ctx context.Context, e *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[e.EventID]; ok {
		return ports.ErrDuplicateKey
	}
	cp := *e
	m.events[e.EventID] = &cp
	return nil
}

func (m *memEventRepo) GetByID(ctx context.Context, eventID string) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[eventID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return e, nil
}

func (m *memEventRepo) List(ctx context.Context, f ports.ListFilter) ([]domain.Event, error) {
	return nil, errors.New("not implemented")
}

func TestSubmitEvent_ConcurrentSubmissions(t *testing.T) {
	const n = 1000

	repo := newMemEventRepo()
	uc := usecase.NewIngestEventUseCase(repo)

	var wg sync.WaitGroup
	errCh := make(chan error, n)
	idCh := make(chan string, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			payload, _ := json.Marshal(map[string]any{"url": "/page", "seq": i})
			id, err := uc.Execute(context.Background(), usecase.SubmitEventInput{
				UserID:    "user_concurrent",
				EventType: "view",
				Payload:   payload,
			})
			if err != nil {
				errCh <- err
				return
			}
			idCh <- id
		}(i)
	}

	wg.Wait()
	close(errCh)
	close(idCh)

	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]bool, n)
	for id := range idCh {
		if seen[id] {
			t.Fatalf("duplicate event id returned: %s", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct ids, got %d", n, len(seen))
	}
	if len(repo.events) != n {
		t.Fatalf("expected %d stored records, got %d", n, len(repo.events))
	}

	for id := range seen {
		if _, err := repo.GetByID(context.Background(), id); err != nil {
			t.Fatalf("event %s not retrievable: %v", id, err)
		}
	}
}
