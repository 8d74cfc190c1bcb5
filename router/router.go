// api/router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medicube/radgate/api/controller"
	"github.com/medicube/radgate/api/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))
	router.Use(middleware.AuthMiddleware())

	api := router.Group("/api/v1")

	controllers.Access.RegisterRoutes(api)
	controllers.Gateway.RegisterRoutes(api)
	controllers.Condition.RegisterRoutes(api)
	controllers.Audit.RegisterRoutes(api)

	return router
}
