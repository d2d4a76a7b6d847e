package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/unischedule/internal/domain"
	appvalidate "github.com/noah-isme/unischedule/internal/validate"
)

type fakeRepository struct {
	values map[string][]byte
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{values: make(map[string][]byte)}
}

func (r *fakeRepository) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := r.values[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(raw, dest)
}

func (r *fakeRepository) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.values[key] = raw
	return nil
}

func sampleInstance() domain.Instance {
	return domain.Instance{
		Timeslots: []domain.TimeslotID{"mon.0"},
		Teachers:  []domain.Teacher{{ID: "t1"}},
	}
}

func TestInstanceCacheDisabledWithoutRepository(t *testing.T) {
	c := NewInstanceCache(nil, 0, nil)
	require.False(t, c.Enabled())
	_, ok := c.Validation(context.Background(), sampleInstance())
	require.False(t, ok)
}

func TestInstanceCacheValidationRoundTrip(t *testing.T) {
	repo := newFakeRepository()
	c := NewInstanceCache(repo, time.Minute, nil)
	inst := sampleInstance()

	_, ok := c.Validation(context.Background(), inst)
	require.False(t, ok)

	report := appvalidate.Validate(inst)
	c.StoreValidation(context.Background(), inst, report)

	cached, ok := c.Validation(context.Background(), inst)
	require.True(t, ok)
	require.Equal(t, report.Errors, cached.Errors)
}

func TestInstanceCacheFeasibilityIndexRoundTrip(t *testing.T) {
	repo := newFakeRepository()
	c := NewInstanceCache(repo, time.Minute, nil)
	inst := sampleInstance()

	_, ok := c.FeasibilityIndex(context.Background(), inst)
	require.False(t, ok)

	c.StoreFeasibilityIndex(context.Background(), inst, nil)

	_, ok = c.FeasibilityIndex(context.Background(), inst)
	require.True(t, ok)
}

func TestHashStableForEquivalentInstances(t *testing.T) {
	a := sampleInstance()
	b := sampleInstance()
	require.Equal(t, Hash(a), Hash(b))
}
