package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/codequal/core/metrics"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheMaxAge is how long a cached score stays valid.
const cacheMaxAge = 7 * 24 * time.Hour

// cachedScore returns the score of a version from the result cache, computing and
// storing it on a miss.
func cachedScore(ctx context.Context, cfg *contract.Config, dir, version string, mgr contract.CacheManager) (*schema.ScoreResult, error) {
	var results contract.CacheStore
	if mgr != nil {
		results = mgr.GetResultStore()
	}
	if results == nil {
		// Fallback to direct computation
		return scoreVersion(ctx, cfg, dir, version)
	}

	key, err := generateCacheKey(cfg, dir, version)
	if err != nil {
		// Unreadable inputs are reported by the loader
		return scoreVersion(ctx, cfg, dir, version)
	}

	// Check for cache hit
	if result := checkCacheHit(results, key); result != nil {
		return result, nil
	}

	// Cache miss: compute and store
	return computeAndStore(ctx, cfg, dir, version, results, key)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(results contract.CacheStore, key string) *schema.ScoreResult {
	data, version, ts, err := results.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= cacheMaxAge {
			var result schema.ScoreResult
			if err := json.Unmarshal(data, &result); err == nil && result.Tree != nil {
				return &result // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(ctx context.Context, cfg *contract.Config, dir, version string, results contract.CacheStore, key string) (*schema.ScoreResult, error) {
	result, err := scoreVersion(ctx, cfg, dir, version)
	if err != nil {
		return nil, err
	}

	// Store in cache
	if data, err := json.Marshal(result); err == nil {
		if err := results.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to cache score", err)
		}
	}

	return result, nil
}

// generateCacheKey creates a unique key from the project, the version name and the
// size and modification time of every input file.
func generateCacheKey(cfg *contract.Config, dir, version string) (string, error) {
	parts := []string{cfg.Project, cfg.ShortName, version}
	for _, path := range metrics.SourcesFor(dir, cfg.ShortName).All() {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", err
		}
		parts = append(parts, fmt.Sprintf("%s:%d:%d", abs, info.Size(), info.ModTime().UnixNano()))
	}
	key := strings.Join(parts, "|")
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key))), nil
}
