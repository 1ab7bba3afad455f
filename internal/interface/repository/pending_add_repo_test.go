package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryPendingAddRepository_PutGetDelete(t *testing.T) {
	repo := NewMemoryPendingAddRepository()

	_, ok := repo.Get(1)
	assert.False(t, ok)

	repo.Put(1, "FR 1234")
	repo.Put(1, "FR 5678")
	code, ok := repo.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "FR 5678", code, "last put wins")

	assert.True(t, repo.Delete(1))
	assert.False(t, repo.Delete(1))
	_, ok = repo.Get(1)
	assert.False(t, ok)
}

func TestMemoryPendingAddRepository_LockSerializesOwner(t *testing.T) {
	repo := NewMemoryPendingAddRepository()

	unlock := repo.Lock(1)
	acquired := make(chan struct{})
	go func() {
		u := repo.Lock(1)
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock for the same owner acquired while held")
	case <-time.After(50 * time.Millisecond):
	}

	// other owners are not blocked
	other := repo.Lock(2)
	other()

	unlock()
	unlock() // second call is a no-op

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("lock was never released")
	}
}

func TestMemoryPendingAddRepository_LocksAreDropped(t *testing.T) {
	repo := NewMemoryPendingAddRepository()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := repo.Lock(7)
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	repo.mu.Lock()
	assert.Empty(t, repo.locks)
	repo.mu.Unlock()
}
