package main

import (
	"log"
	"parts_manager/internal/config"
	"parts_manager/internal/database"
	"parts_manager/internal/handlers"
	"parts_manager/internal/redis"
	"parts_manager/internal/repository"
	"parts_manager/internal/services"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	lineRepo := repository.NewOrderedPartRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	trackerRepo := repository.NewStatusTrackerRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	orderService := services.NewOrderService(orderRepo, trackerRepo, catalogRepo)
	lineService := services.NewPartLineService(lineRepo, orderRepo, inventoryRepo, catalogRepo)
	inventoryService := services.NewInventoryService(inventoryRepo, lineRepo, orderRepo, catalogRepo)
	metricsService := services.NewMetricsService(
		orderRepo, lineRepo, trackerRepo, catalogRepo,
		redisClient, time.Duration(cfg.MetricsCacheTTL)*time.Second,
	)

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(orderService)
	lineHandler := handlers.NewLineHandler(lineService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	metricsHandler := handlers.NewMetricsHandler(metricsService)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)
	userHandler := handlers.NewUserHandler(userService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		// Orders
		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/orders", orderHandler.ListOrders)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.PUT("/orders/:id/status", orderHandler.SetStatus)
		api.GET("/orders/:id/timeline", orderHandler.GetTimeline)
		api.GET("/statuses", orderHandler.ListStatuses)

		// Order lines
		api.POST("/orders/:id/lines", lineHandler.AddLine)
		api.GET("/orders/:id/lines", lineHandler.GetOrderLines)
		api.GET("/lines/:id", lineHandler.GetLine)
		api.PUT("/lines/:id/qty", lineHandler.UpdateQty)
		api.PUT("/lines/:id/costing", lineHandler.SetCosting)
		api.PUT("/lines/:id/mrr", lineHandler.SetMRR)
		api.PUT("/lines/:id/office-note", lineHandler.SetOfficeNote)
		api.POST("/lines/:id/return", lineHandler.ReturnLine)
		api.DELETE("/lines/:id", lineHandler.DeleteLine)
		api.PUT("/lines/:id/approval", lineHandler.ToggleApproval)

		// Inventory
		api.POST("/lines/:id/receive", inventoryHandler.ReceivePart)
		api.POST("/lines/:id/transfer", inventoryHandler.TransferFromStorage)
		api.POST("/inventory/defective", inventoryHandler.MarkDefective)
		api.POST("/inventory/adjust", inventoryHandler.AdjustMachinePart)
		api.POST("/inventory/damage", inventoryHandler.Damage)
		api.POST("/inventory/restock", inventoryHandler.RestockStorage)
		api.GET("/machines/:machine_id/parts", inventoryHandler.ListMachineParts)
		api.GET("/factories/:factory_id/storage", inventoryHandler.ListStorageParts)
		api.GET("/factories/:factory_id/damaged", inventoryHandler.ListDamagedGoods)

		// Metrics
		api.GET("/metrics/machines", metricsHandler.MachineCounts)
		api.GET("/metrics/manageable-orders", metricsHandler.ManageableOrders)
		api.GET("/metrics/top-parts", metricsHandler.MostOrderedParts)
		api.GET("/metrics/top-sections", metricsHandler.TopMaintenanceSections)

		// Catalogs (read-only)
		api.GET("/factories", catalogHandler.ListFactories)
		api.GET("/factories/:factory_id/sections", catalogHandler.ListSections)
		api.GET("/sections/:section_id/machines", catalogHandler.ListMachines)
		api.GET("/departments", catalogHandler.ListDepartments)
		api.GET("/parts", catalogHandler.ListParts)
		api.GET("/parts/:id", catalogHandler.GetPart)

		// Users
		api.POST("/users", userHandler.CreateUser)
		api.GET("/users", userHandler.ListUsers)
		api.GET("/users/:id", userHandler.GetUser)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
