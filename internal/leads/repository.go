package leads

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository is the storage capability the submission endpoint depends on.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Create inserts one lead with status "new" and returns the stored record.
	Create(ctx context.Context, req *SubmitLeadRequest) (*Lead, error)
	// Configured reports whether the backend has usable connection settings.
	Configured() bool
}

// InMemoryRepository keeps leads in process memory. Used for local runs and tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads []*Lead
	now   func() time.Time
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{now: time.Now}
}

// Create appends a new lead. Identical submissions produce distinct records.
func (r *InMemoryRepository) Create(ctx context.Context, req *SubmitLeadRequest) (*Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lead := newLead(req)
	lead.ID = uuid.New().String()
	lead.CreatedAt = r.now().UTC()

	r.mu.Lock()
	r.leads = append(r.leads, lead)
	r.mu.Unlock()

	stored := *lead
	return &stored, nil
}

// Configured always reports true.
func (r *InMemoryRepository) Configured() bool { return true }

// Leads returns a snapshot of every stored lead in insertion order.
func (r *InMemoryRepository) Leads() []Lead {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Lead, 0, len(r.leads))
	for _, l := range r.leads {
		out = append(out, *l)
	}
	return out
}

// Count returns the number of stored leads.
func (r *InMemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.leads)
}

// UnconfiguredRepository stands in when no backend credentials were supplied.
type UnconfiguredRepository struct{}

// NewUnconfiguredRepository returns a repository that always reports not configured.
func NewUnconfiguredRepository() UnconfiguredRepository { return UnconfiguredRepository{} }

// Create always fails with ErrStorageNotConfigured.
func (UnconfiguredRepository) Create(context.Context, *SubmitLeadRequest) (*Lead, error) {
	return nil, ErrStorageNotConfigured
}

// Configured always reports false.
func (UnconfiguredRepository) Configured() bool { return false }
