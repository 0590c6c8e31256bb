package controllers

import (
	"context"
	"net/http"
	"time"

	"pitchhub/internal/livecall"
	"pitchhub/models"
	"pitchhub/services"

	"github.com/gin-gonic/gin"
)

type analyzeCallRequest struct {
	ScenarioID string                `json:"scenarioId"`
	Turns      []models.DialogueTurn `json:"turns" binding:"required"`
	Metrics    models.CallMetrics    `json:"metrics"`
}

// AnalyzeCall scores a finished call from its transcript and metrics,
// persists the attempt, and returns the analysis and score.
func AnalyzeCall(ctx *gin.Context) {
	orgID, userID := ctx.GetString("orgId"), ctx.GetString("userId")

	allowed, err := livecall.NewRateLimiter().AllowAnalysis(orgID, userID, livecall.DefaultRateLimitConfig())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !allowed {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Analysis rate limit exceeded, try again shortly"})
		return
	}

	var req analyzeCallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := services.DefaultAttemptService.CompleteCall(
		dbCtx,
		orgID,
		userID,
		req.ScenarioID,
		req.Turns,
		req.Metrics,
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	livecall.NewContextCache().Invalidate(orgID, userID)

	ctx.JSON(http.StatusOK, gin.H{
		"attemptId": result.Attempt.ID,
		"analysis":  result.Analysis,
		"score":     result.Score,
	})
}

// GetAttempts returns the scoped user's recent attempt summaries.
func GetAttempts(ctx *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	summaries, err := services.DefaultAttemptService.Attempts.RecentSummaries(
		dbCtx, ctx.GetString("orgId"), ctx.GetString("userId"), 20,
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"attempts": summaries})
}
