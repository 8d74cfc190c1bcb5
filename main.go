package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medicube/radgate/api/audit"
	"github.com/medicube/radgate/api/config"
	"github.com/medicube/radgate/api/controller"
	"github.com/medicube/radgate/api/dao"
	"github.com/medicube/radgate/api/db"
	"github.com/medicube/radgate/api/gateway"
	logger "github.com/medicube/radgate/api/logging"
	pdp_dao "github.com/medicube/radgate/api/pdp/dao"
	"github.com/medicube/radgate/api/pdp/engine"
	"github.com/medicube/radgate/api/router"
	"github.com/medicube/radgate/api/service"
	"github.com/medicube/radgate/api/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger("logging")
	defer logger.Sync()

	// Initialize Neo4j
	if err := db.InitNeo4j(); err != nil {
		logger.Fatal("Failed to initialize Neo4j", zap.Error(err))
	}
	defer db.CloseNeo4j()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize services and utilities
	notificationService := util.NewNotificationService()
	auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
	if err != nil {
		logger.Fatal("Failed to initialize Elasticsearch", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)

	// Initialize DAOs
	membershipDAO := dao.NewMembershipDAO(db.Neo4jDriver)
	institutionDAO := dao.NewInstitutionDAO(db.Neo4jDriver)
	grantDAO := dao.NewGrantDAO(db.Neo4jDriver)
	hierarchyDAO := dao.NewHierarchyDAO(db.Neo4jDriver)
	conditionDAO := dao.NewConditionDAO(db.Neo4jDriver)
	conditionRetrievalDAO := pdp_dao.NewConditionRetrievalDAO(db.Neo4jDriver)

	// Initialize the decision engine and services
	evaluator := engine.NewEvaluator(
		membershipDAO,
		institutionDAO,
		grantDAO,
		hierarchyDAO,
		conditionRetrievalDAO,
	)
	accessService := service.NewAccessService(evaluator, eventBus, auditService, notificationService)
	conditionService := service.NewConditionService(conditionDAO, notificationService, eventBus)

	qidoClient := gateway.NewQidoClient()
	gatewayService := gateway.NewService(qidoClient, accessService, conditionRetrievalDAO)

	// Initialize controllers
	controllers := &controller.Controllers{
		Access:    controller.NewAccessController(accessService),
		Gateway:   controller.NewDicomGatewayController(gatewayService),
		Condition: controller.NewConditionController(conditionService),
		Audit:     controller.NewAuditController(auditService),
	}

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engineRouter := router.SetupRouter(controllers, 100, time.Minute) // 100 requests per minute

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engineRouter,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
