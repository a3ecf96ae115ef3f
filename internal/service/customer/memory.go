package customer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	applog "github.com/janisto/customer-form/internal/platform/logging"
	"github.com/janisto/customer-form/internal/platform/metrics"
)

// DefaultMaxFormsPerOwner caps how many forms one owner may hold at once.
const DefaultMaxFormsPerOwner = 20

// StoreOptions configures a MemoryStore.
type StoreOptions struct {
	Form             Options
	Sink             Sink             // nil uses LogSink
	Metrics          *metrics.Metrics // nil records nothing
	NewID            func() string    // nil uses UUIDv4
	MaxFormsPerOwner int              // 0 uses DefaultMaxFormsPerOwner
}

type entry struct {
	form      *Form
	owner     string
	createdAt time.Time
}

// MemoryStore implements Service with forms held in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	forms map[string]*entry
	owned map[string]int

	maxPerOwner int
	formOpts    Options
	sink     Sink
	metrics  *metrics.Metrics
	newID    func() string
	now      func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts StoreOptions) *MemoryStore {
	s := &MemoryStore{
		forms:       make(map[string]*entry),
		owned:       make(map[string]int),
		maxPerOwner: opts.MaxFormsPerOwner,
		formOpts:    opts.Form,
		sink:        opts.Sink,
		metrics:     opts.Metrics,
		newID:       opts.NewID,
		now:         opts.Form.Now,
	}
	if s.maxPerOwner <= 0 {
		s.maxPerOwner = DefaultMaxFormsPerOwner
	}
	if s.sink == nil {
		s.sink = LogSink{}
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.formOpts.Now = s.now
	if s.formOpts.OnEmailMessage == nil {
		s.formOpts.OnEmailMessage = func(string) { s.metrics.EmailMessageUpdated() }
	}
	return s
}

// Create fails with ErrLimitReached once owner holds the maximum number of
// forms; deleting one frees a slot.
func (s *MemoryStore) Create(ctx context.Context, owner string) (*Session, error) {
	s.mu.Lock()
	if s.owned[owner] >= s.maxPerOwner {
		s.mu.Unlock()
		applog.LogAudit(ctx, applog.AuditEvent{
			Action:       "create",
			UserID:       owner,
			ResourceType: "customer_form",
			Result:       applog.AuditFailure,
			Details:      map[string]any{"reason": "form limit reached"},
		})
		return nil, ErrLimitReached
	}
	e := &entry{
		form:      NewForm(s.formOpts),
		owner:     owner,
		createdAt: s.now().UTC(),
	}
	id := s.newID()
	s.forms[id] = e
	s.owned[owner]++
	s.mu.Unlock()

	s.metrics.FormCreated()
	applog.LogAudit(ctx, applog.AuditEvent{
		Action:       "create",
		UserID:       owner,
		ResourceType: "customer_form",
		ResourceID:   id,
		Result:       applog.AuditSuccess,
	})
	return s.session(id, e), nil
}

func (s *MemoryStore) Get(_ context.Context, owner, id string) (*Session, error) {
	e, err := s.lookup(owner, id)
	if err != nil {
		return nil, err
	}
	return s.session(id, e), nil
}

func (s *MemoryStore) Input(ctx context.Context, owner, id string, changes []FieldChange) (*Session, error) {
	e, err := s.lookup(owner, id)
	if err != nil {
		return nil, err
	}
	if err := e.form.Input(changes...); err != nil {
		applog.LogWarn(ctx, "field input rejected", zap.String("formId", id), zap.Error(err))
		return nil, err
	}
	return s.session(id, e), nil
}

func (s *MemoryStore) Touch(_ context.Context, owner, id string, paths []string) (*Session, error) {
	e, err := s.lookup(owner, id)
	if err != nil {
		return nil, err
	}
	if err := e.form.Touch(paths...); err != nil {
		return nil, err
	}
	return s.session(id, e), nil
}

func (s *MemoryStore) AddAddress(_ context.Context, owner, id string) (*Session, error) {
	e, err := s.lookup(owner, id)
	if err != nil {
		return nil, err
	}
	e.form.AddAddress()
	s.metrics.AddressAdded()
	return s.session(id, e), nil
}

func (s *MemoryStore) Addresses(_ context.Context, owner, id string) ([]Address, error) {
	e, err := s.lookup(owner, id)
	if err != nil {
		return nil, err
	}
	return e.form.Addresses(), nil
}

func (s *MemoryStore) SetValues(ctx context.Context, owner, id string, value any) (*Session, error) {
	e, err := s.lookup(owner, id)
	if err != nil {
		return nil, err
	}
	if err := e.form.SetValue(value); err != nil {
		applog.LogWarn(ctx, "form value rejected", zap.String("formId", id), zap.Error(err))
		return nil, err
	}
	return s.session(id, e), nil
}

func (s *MemoryStore) PopulateTestData(ctx context.Context, owner, id string) (*Session, error) {
	e, err := s.lookup(owner, id)
	if err != nil {
		return nil, err
	}
	if err := e.form.PopulateTestData(); err != nil {
		applog.LogWarn(ctx, "test data rejected", zap.String("formId", id), zap.Error(err))
		return nil, err
	}
	return s.session(id, e), nil
}

func (s *MemoryStore) Save(ctx context.Context, owner, id string) (*SaveResult, error) {
	start := time.Now()
	e, err := s.lookup(owner, id)
	if err != nil {
		return nil, err
	}

	snapshot, valid := e.form.Submission()
	result := SaveResult{
		FormID:   id,
		Customer: snapshot,
		Valid:    valid,
		SavedAt:  s.now().UTC(),
	}
	if err := s.sink.Save(ctx, owner, result); err != nil {
		applog.LogAudit(ctx, applog.AuditEvent{
			Action:       "save",
			UserID:       owner,
			ResourceType: "customer_form",
			ResourceID:   id,
			Result:       applog.AuditFailure,
		})
		return nil, err
	}
	s.metrics.FormSaved(valid, start)
	return &result, nil
}

func (s *MemoryStore) Delete(ctx context.Context, owner, id string) error {
	s.mu.Lock()
	e, ok := s.forms[id]
	if !ok || e.owner != owner {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.forms, id)
	if s.owned[owner]--; s.owned[owner] == 0 {
		delete(s.owned, owner)
	}
	s.mu.Unlock()

	e.form.Close()
	s.metrics.FormDeleted()
	applog.LogAudit(ctx, applog.AuditEvent{
		Action:       "delete",
		UserID:       owner,
		ResourceType: "customer_form",
		ResourceID:   id,
		Result:       applog.AuditSuccess,
	})
	return nil
}

// Count returns the number of forms held.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.forms)
}

// Close stops every pending timer. Forms stay readable.
func (s *MemoryStore) Close() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.forms {
		e.form.Close()
	}
}

func (s *MemoryStore) lookup(owner, id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.forms[id]
	if !ok || e.owner != owner {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *MemoryStore) session(id string, e *entry) *Session {
	return &Session{
		ID:        id,
		Owner:     e.owner,
		CreatedAt: e.createdAt,
		UpdatedAt: e.form.UpdatedAt().UTC(),
		State:     e.form.State(),
	}
}

// Compile-time interface check
var _ Service = (*MemoryStore)(nil)
