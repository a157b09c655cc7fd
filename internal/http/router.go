package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/fundocs-backend/internal/http/handlers"
	httpMW "github.com/yungbote/fundocs-backend/internal/http/middleware"
	"github.com/yungbote/fundocs-backend/internal/observability"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	Metrics        *observability.Metrics

	LearningHandler *httpH.LearningHandler
	UserHandler     *httpH.UserHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Documents
		if cfg.LearningHandler != nil {
			api.POST("/fetch_clean_doc", cfg.LearningHandler.FetchCleanDoc)
			api.GET("/fetch_user_docs", cfg.LearningHandler.FetchUserDocs)
			api.POST("/delete-doc", cfg.LearningHandler.DeleteDoc)

			// Generation
			api.POST("/generate_all", cfg.LearningHandler.GenerateAll)

			// Progress
			api.POST("/update_progress", cfg.LearningHandler.UpdateProgress)
			api.GET("/get_progress", cfg.LearningHandler.GetProgress)
			api.GET("/leaderboard", cfg.LearningHandler.Leaderboard)

			// Challenges
			api.POST("/submit_challenge", cfg.LearningHandler.SubmitChallenge)

			// Reports
			api.POST("/generate_report", cfg.LearningHandler.GenerateReport)
			api.POST("/download_report_pdf", cfg.LearningHandler.DownloadReportPDF)
		}

		// Account
		if cfg.UserHandler != nil {
			api.POST("/delete-account", cfg.UserHandler.DeleteAccount)
		}
	}

	return r
}
