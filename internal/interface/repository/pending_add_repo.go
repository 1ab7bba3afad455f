package repository

import (
	"sync"

	"fare-tracker-service/internal/domain/repository"
)

// MemoryPendingAddRepository keeps pending ADD codes in memory. They do not
// survive a restart.
type MemoryPendingAddRepository struct {
	mu      sync.Mutex
	pending map[int64]string
	locks   map[int64]*ownerLock
}

type ownerLock struct {
	mu   sync.Mutex
	refs int
}

// NewMemoryPendingAddRepository creates an empty pending add table
func NewMemoryPendingAddRepository() *MemoryPendingAddRepository {
	return &MemoryPendingAddRepository{
		pending: make(map[int64]string),
		locks:   make(map[int64]*ownerLock),
	}
}

var _ repository.PendingAddRepository = (*MemoryPendingAddRepository)(nil)

// Lock blocks until ownerID's lock is free. Idle locks are dropped so the
// table does not grow with every owner ever seen.
func (r *MemoryPendingAddRepository) Lock(ownerID int64) func() {
	r.mu.Lock()
	l, ok := r.locks[ownerID]
	if !ok {
		l = &ownerLock{}
		r.locks[ownerID] = l
	}
	l.refs++
	r.mu.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()
			r.mu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(r.locks, ownerID)
			}
			r.mu.Unlock()
		})
	}
}

func (r *MemoryPendingAddRepository) Get(ownerID int64) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code, ok := r.pending[ownerID]
	return code, ok
}

// Put replaces any pending code for the owner
func (r *MemoryPendingAddRepository) Put(ownerID int64, flightCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[ownerID] = flightCode
}

func (r *MemoryPendingAddRepository) Delete(ownerID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pending[ownerID]
	delete(r.pending, ownerID)
	return ok
}
