package livecall

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pitchhub/models"
)

// contextTTL keeps cached coaching context fresh enough that a profile
// refresh shows up within half a minute.
const contextTTL = 30 * time.Second

// ContextCache is a short-lived Redis cache for composed coaching contexts,
// which are recomputed from scratch on every request otherwise.
type ContextCache struct {
	rdb *redis.Client
}

func NewContextCache() *ContextCache {
	return &ContextCache{rdb: rdb}
}

func contextKey(orgID, userID string) string {
	return fmt.Sprintf("ctx:%s:%s", orgID, userID)
}

// Get returns the cached context for the user, reporting whether one was
// found. Cache misses and an unconfigured client look the same to callers.
func (c *ContextCache) Get(orgID, userID string) (models.AgentContext, bool) {
	if c == nil || c.rdb == nil {
		return models.AgentContext{}, false
	}

	data, err := c.rdb.Get(ctx, contextKey(orgID, userID)).Result()
	if err != nil {
		return models.AgentContext{}, false
	}

	var agentCtx models.AgentContext
	if err := json.Unmarshal([]byte(data), &agentCtx); err != nil {
		return models.AgentContext{}, false
	}
	return agentCtx, true
}

// Set stores the composed context. Failures are swallowed; the cache is an
// optimization, never a source of truth.
func (c *ContextCache) Set(orgID, userID string, agentCtx models.AgentContext) {
	if c == nil || c.rdb == nil {
		return
	}

	data, err := json.Marshal(agentCtx)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, contextKey(orgID, userID), string(data), contextTTL)
}

// Invalidate drops the cached context, called after a profiler run so the
// next read reflects the new profile immediately.
func (c *ContextCache) Invalidate(orgID, userID string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, contextKey(orgID, userID))
}
