// Package httpapi serves the information graph and insight operations over
// HTTP with gin.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"insightgraph/internal/evidence"
	"insightgraph/internal/logger"
	"insightgraph/internal/mail"
	"insightgraph/internal/model"
	"insightgraph/internal/store"
)

// Service is the slice of *store.Store the handlers use.
type Service interface {
	GetOverview() (*store.Overview, error)
	GetSummaries(q store.SummaryQuery) ([]model.Summary, error)
	GetNodes(q store.NodeQuery) ([]model.InformationNode, error)
	GetLinks(nodeID string) ([]model.NodeLink, error)
	GetBriefing() ([]model.BriefingCard, error)
	GetInsight(id string) (*model.InsightBlock, error)
	GetAllInsights() ([]model.InsightBlock, error)
	CreateInsight(ctx context.Context, in store.CreateInsightInput) (*model.InsightBlock, error)
	InjectEvidence(ctx context.Context, in evidence.Input) (*store.InjectionResult, error)
	GetInjections() ([]model.Injection, error)
}

var _ Service = (*store.Store)(nil)

type RouterConfig struct {
	Service     Service
	Mailer      mail.Sender
	Log         *logger.Logger
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Content-Type", "X-Requested-With"},
			MaxAge:       12 * time.Hour,
		}))
	}

	r.GET("/healthcheck", healthCheck)

	graph := &GraphHandler{svc: cfg.Service}
	insights := &InsightHandler{svc: cfg.Service}
	ev := &EvidenceHandler{svc: cfg.Service}
	briefing := &BriefingHandler{svc: cfg.Service, mailer: cfg.Mailer, log: log}

	api := r.Group("/api")
	{
		api.GET("/overview", graph.Overview)
		api.GET("/summaries", graph.Summaries)
		api.GET("/nodes", graph.Nodes)
		api.GET("/links", graph.Links)

		api.GET("/briefing", briefing.Cards)
		api.POST("/briefing/email", briefing.Email)

		api.GET("/insights", insights.List)
		api.GET("/insights/:id", insights.Get)
		api.POST("/insights", insights.Create)

		api.POST("/evidence", ev.Inject)
		api.GET("/injections", ev.List)
	}
	return r
}

func healthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
