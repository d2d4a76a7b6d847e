// Package cache memoizes instance-derived computations (the structural
// validation report and the unpinned feasibility index) behind a
// content hash of the instance. SolverService reads the validation report
// back, so an unchanged instance is not revalidated; the solve engines
// build their own feasibility index per solve and do not read the cached
// one (SPEC_FULL.md's domain-stack enrichment over spec.md §4.2/§4.4).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/unischedule/internal/domain"
	"github.com/noah-isme/unischedule/internal/feasibility"
	appvalidate "github.com/noah-isme/unischedule/internal/validate"
)

// Repository abstracts the redis-backed key/value store this cache sits
// on top of (satisfied by *repository.CacheRepository).
type Repository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// InstanceCache memoizes per-instance computations. A nil repo (no Redis
// configured) makes every lookup a miss and every store a no-op.
type InstanceCache struct {
	repo   Repository
	ttl    time.Duration
	logger *zap.Logger
}

// NewInstanceCache wires a repository and TTL. logger may be nil.
func NewInstanceCache(repo Repository, ttl time.Duration, logger *zap.Logger) *InstanceCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &InstanceCache{repo: repo, ttl: ttl, logger: logger}
}

// Enabled reports whether a backing repository is wired.
func (c *InstanceCache) Enabled() bool {
	return c != nil && c.repo != nil
}

type cachedValidation struct {
	Errors []string `json:"errors"`
}

// Validation returns a memoized report for inst, if present.
func (c *InstanceCache) Validation(ctx context.Context, inst domain.Instance) (appvalidate.Report, bool) {
	if !c.Enabled() {
		return appvalidate.Report{}, false
	}
	hash := Hash(inst)
	if hash == "" {
		return appvalidate.Report{}, false
	}
	var cached cachedValidation
	if err := c.repo.Get(ctx, validationKey(hash), &cached); err != nil {
		return appvalidate.Report{}, false
	}
	return appvalidate.Report{Errors: cached.Errors}, true
}

// StoreValidation memoizes report under inst's content hash.
func (c *InstanceCache) StoreValidation(ctx context.Context, inst domain.Instance, report appvalidate.Report) {
	if !c.Enabled() {
		return
	}
	hash := Hash(inst)
	if hash == "" {
		return
	}
	if err := c.repo.Set(ctx, validationKey(hash), cachedValidation{Errors: report.Errors}, c.ttl); err != nil {
		c.logger.Sugar().Warnw("validation cache set failed", "error", err)
	}
}

// FeasibilityIndex returns the memoized unpinned feasibility index for
// inst, if present. Callers that need an index excluding a pinned set
// still compute it directly from feasibility.BuildExcludingPinned, since
// pins vary per envelope and are not part of the cache key.
func (c *InstanceCache) FeasibilityIndex(ctx context.Context, inst domain.Instance) (feasibility.Index, bool) {
	if !c.Enabled() {
		return nil, false
	}
	hash := Hash(inst)
	if hash == "" {
		return nil, false
	}
	var idx feasibility.Index
	if err := c.repo.Get(ctx, feasibilityKey(hash), &idx); err != nil {
		return nil, false
	}
	return idx, true
}

// StoreFeasibilityIndex memoizes idx under inst's content hash.
func (c *InstanceCache) StoreFeasibilityIndex(ctx context.Context, inst domain.Instance, idx feasibility.Index) {
	if !c.Enabled() {
		return
	}
	hash := Hash(inst)
	if hash == "" {
		return
	}
	if err := c.repo.Set(ctx, feasibilityKey(hash), idx, c.ttl); err != nil {
		c.logger.Sugar().Warnw("feasibility cache set failed", "error", err)
	}
}

// Hash returns a content hash of inst suitable as a cache key component.
// Two instances that marshal identically are treated as the same
// instance even if constructed independently.
func Hash(inst domain.Instance) string {
	raw, err := json.Marshal(inst)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func validationKey(hash string) string   { return "unischedule:validate:" + hash }
func feasibilityKey(hash string) string { return "unischedule:feasibility:" + hash }
