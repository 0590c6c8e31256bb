package controllers

import (
	"context"
	"net/http"
	"time"

	"pitchhub/internal/livecall"
	"pitchhub/services"

	"github.com/gin-gonic/gin"
)

// GetAgentContext composes and returns the coaching context for the scoped
// user, serving from the short-lived Redis cache when one is configured.
func GetAgentContext(ctx *gin.Context) {
	orgID, userID := ctx.GetString("orgId"), ctx.GetString("userId")

	cache := livecall.NewContextCache()
	if cached, ok := cache.Get(orgID, userID); ok {
		ctx.JSON(http.StatusOK, cached)
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	agentCtx, err := services.DefaultContextBuilder.Build(dbCtx, orgID, userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	cache.Set(orgID, userID, agentCtx)

	ctx.JSON(http.StatusOK, agentCtx)
}

// RefreshProfile reruns the weakness profiler for the scoped user and
// returns the recomputed dimension results.
func RefreshProfile(ctx *gin.Context) {
	orgID, userID := ctx.GetString("orgId"), ctx.GetString("userId")

	dbCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := services.DefaultProfiler.Refresh(dbCtx, orgID, userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	livecall.NewContextCache().Invalidate(orgID, userID)

	ctx.JSON(http.StatusOK, gin.H{"dimensions": results})
}
