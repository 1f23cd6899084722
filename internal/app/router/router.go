package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	eventshandler "record_backend/internal/feature/events/transport/handler"
	recordshandler "record_backend/internal/feature/records/transport/handler"
	platformhandler "record_backend/internal/platform/http/handler"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(records *recordshandler.RecordHandler, events *eventshandler.EventsHandler,
	health *platformhandler.HealthHandler) *gin.Engine {
	r := gin.Default()

	// Allow-all CORS, matching the browser clients this API serves.
	r.Use(cors.Default())

	// Liveness plus datastore reachability
	r.GET("/healthz", health.Health)

	// Record CRUD
	rg := r.Group("/records")
	{
		rg.GET("", records.List)
		rg.GET("/search", records.Search)
		rg.GET("/:id", records.Get)
		rg.POST("", records.Create)
		rg.POST("/reset", records.Reset)
		rg.PUT("/:id", records.Update)
		rg.DELETE("/:id", records.Delete)
	}

	// Mutation event stream (SSE)
	r.GET("/events", events.Stream)

	return r
}
