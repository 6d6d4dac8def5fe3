package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/adonay-express/orderflow/internal/server/http/handlers"
	"github.com/adonay-express/orderflow/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.OrderFlowFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	summaryHandler := handlers.NewSummaryHandler(facade)
	batchHandler := handlers.NewBatchHandler(facade)
	connectivityHandler := handlers.NewConnectivityHandler(facade)

	api := engine.Group("/api")

	orders := api.Group("/orders")
	orders.POST("", orderHandler.Submit)
	orders.GET("/active", orderHandler.Active)
	orders.GET("/archive", orderHandler.Archive)
	orders.PATCH("/:id/status", orderHandler.ChangeStatus)
	orders.PUT("/:id/lines", orderHandler.ReviseLines)
	orders.POST("/:id/finalize", orderHandler.Finalize)

	summaries := api.Group("/summaries")
	summaries.GET("/batches", summaryHandler.Batches)
	summaries.GET("/batches/:tag", summaryHandler.Batch)
	summaries.GET("/batches/:tag/export", summaryHandler.BatchCSV)
	summaries.GET("/categories", summaryHandler.Categories)
	summaries.GET("/categories/export", summaryHandler.CategoriesCSV)

	api.POST("/batch", batchHandler.Start)
	api.DELETE("/batch", batchHandler.End)
	api.GET("/batch", batchHandler.Active)

	api.GET("/connectivity", connectivityHandler.State)

	return engine
}
