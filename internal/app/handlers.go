package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/fundocs-backend/internal/http"
	httpH "github.com/yungbote/fundocs-backend/internal/http/handlers"
	"github.com/yungbote/fundocs-backend/internal/observability"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Learning *httpH.LearningHandler
	User     *httpH.UserHandler
}

func wireHandlers(log *logger.Logger, uc Usecases) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Learning: httpH.NewLearningHandler(log, uc.Learning),
		User:     httpH.NewUserHandler(log, uc.User),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:             log,
		ServiceName:     cfg.ServiceName,
		AllowedOrigins:  cfg.FrontendURLs,
		Metrics:         metrics,
		HealthHandler:   handlers.Health,
		LearningHandler: handlers.Learning,
		UserHandler:     handlers.User,
	})
}
