package main

import (
	"github.com/hibiken/asynq"

	locationJob "shop-backend/internal/domains/location/job"
	"shop-backend/internal/shared"
	"shop-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	warmTree     *locationJob.WarmTreeHandler
	warmAllTrees *locationJob.WarmAllTreesHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		warmTree:     locationJob.NewWarmTreeHandler(c.ProvinceService),
		warmAllTrees: locationJob.NewWarmAllTreesHandler(c.ProvinceService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Location tasks
	mux.HandleFunc(shared.TypeWarmProvinceTree, h.warmTree.ProcessTask)
	mux.HandleFunc(shared.TypeWarmAllProvinceTrees, h.warmAllTrees.ProcessTask)
}
