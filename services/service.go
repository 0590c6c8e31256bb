package services

import (
	"pitchhub/config"
	"pitchhub/db"
)

var (
	DefaultProfiler       *WeaknessProfiler
	DefaultContextBuilder *ContextBuilder
	DefaultAttemptService *AttemptService
)

// Init wires the default services against the Mongo-backed stores. Must run
// after db.ConnectMongoDB.
func Init(cfg *config.Config) {
	attempts := db.NewAttemptStore()
	memory := db.NewMemoryStore()
	scenarios := db.NewScenarioStore()

	DefaultProfiler = NewWeaknessProfiler(attempts, memory, cfg.Profiler.WindowSize)
	DefaultContextBuilder = NewContextBuilder(attempts, memory)
	DefaultAttemptService = NewAttemptService(attempts, scenarios, DefaultProfiler)
}
