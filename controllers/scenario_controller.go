package controllers

import (
	"context"
	"net/http"
	"time"

	"pitchhub/db"
	"pitchhub/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListScenarios returns all practice scenarios.
func ListScenarios(ctx *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	scenarios, err := db.NewScenarioStore().List(dbCtx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}

type createScenarioRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	PersonaName string         `json:"personaName"`
	Rubric      *models.Rubric `json:"rubric"`
}

// CreateScenario stores a new scenario with its rubric.
func CreateScenario(ctx *gin.Context) {
	var req createScenarioRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	scenario := models.Scenario{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		PersonaName: req.PersonaName,
		Rubric:      req.Rubric,
		CreatedAt:   time.Now(),
	}
	if err := db.NewScenarioStore().Insert(dbCtx, scenario); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"scenario": scenario})
}
