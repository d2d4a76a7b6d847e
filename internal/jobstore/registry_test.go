package jobstore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/unischedule/internal/domain"
)

func TestNewAllocatesQueuedStatus(t *testing.T) {
	r := NewRegistry()
	id := r.New()
	status, ok := r.Get(id)
	require.True(t, ok)
	assert.Equal(t, domain.JobQueued, status.State)
}

func TestGetUnknownIDReturnsFalse(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Get("missing")
	assert.False(t, ok)
}

func TestSetTransitionsState(t *testing.T) {
	r := NewRegistry()
	id := r.New()
	r.Set(id, domain.RunningStatus())
	status, _ := r.Get(id)
	assert.Equal(t, domain.JobRunning, status.State)

	r.Set(id, domain.FailedStatus("boom"))
	status, _ = r.Get(id)
	assert.Equal(t, domain.JobFailed, status.State)
	assert.Equal(t, "boom", status.Message)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = r.New()
	}
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			r.Set(id, domain.RunningStatus())
			_, _ = r.Get(id)
		}(id)
	}
	wg.Wait()
	for _, id := range ids {
		status, ok := r.Get(id)
		require.True(t, ok)
		assert.Equal(t, domain.JobRunning, status.State)
	}
}
