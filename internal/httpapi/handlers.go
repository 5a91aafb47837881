package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"insightgraph/internal/evidence"
	"insightgraph/internal/logger"
	"insightgraph/internal/mail"
	"insightgraph/internal/store"
)

type GraphHandler struct {
	svc Service
}

// GET /api/overview
func (h *GraphHandler) Overview(c *gin.Context) {
	overview, err := h.svc.GetOverview()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, overview)
}

// GET /api/summaries?limit&source&importance
func (h *GraphHandler) Summaries(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_limit", err)
		return
	}
	summaries, err := h.svc.GetSummaries(store.SummaryQuery{
		Limit:      limit,
		Source:     c.Query("source"),
		Importance: c.Query("importance"),
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"summaries": summaries})
}

// GET /api/nodes?limit&tag&entity
func (h *GraphHandler) Nodes(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_limit", err)
		return
	}
	nodes, err := h.svc.GetNodes(store.NodeQuery{
		Limit:  limit,
		Tag:    c.Query("tag"),
		Entity: c.Query("entity"),
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"information_nodes": nodes})
}

// GET /api/links?node_id
func (h *GraphHandler) Links(c *gin.Context) {
	links, err := h.svc.GetLinks(c.Query("node_id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"node_links": links})
}

func queryLimit(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("limit must be a positive integer, got %q", raw)
	}
	return n, nil
}

type InsightHandler struct {
	svc Service
}

// GET /api/insights
func (h *InsightHandler) List(c *gin.Context) {
	insights, err := h.svc.GetAllInsights()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"insight_blocks": insights})
}

// GET /api/insights/:id
func (h *InsightHandler) Get(c *gin.Context) {
	id := c.Param("id")
	block, err := h.svc.GetInsight(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if block == nil {
		RespondError(c, http.StatusNotFound, "insight_not_found", fmt.Errorf("insight %s not found", id))
		return
	}
	RespondOK(c, block)
}

type createInsightRequest struct {
	ScenarioPrompt  string   `json:"scenario_prompt"`
	SelectedNodeIDs []string `json:"selected_node_ids"`
}

// POST /api/insights
func (h *InsightHandler) Create(c *gin.Context) {
	var req createInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if strings.TrimSpace(req.ScenarioPrompt) == "" && len(req.SelectedNodeIDs) == 0 {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("scenario_prompt or selected_node_ids is required"))
		return
	}
	block, err := h.svc.CreateInsight(c.Request.Context(), store.CreateInsightInput{
		ScenarioPrompt:  req.ScenarioPrompt,
		SelectedNodeIDs: req.SelectedNodeIDs,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, block)
}

type EvidenceHandler struct {
	svc Service
}

type injectEvidenceRequest struct {
	Title           string `json:"title" binding:"required"`
	Source          string `json:"source"`
	ContentText     string `json:"content_text"`
	TargetInsightID string `json:"target_insight_id"`
}

// POST /api/evidence
func (h *EvidenceHandler) Inject(c *gin.Context) {
	var req injectEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.svc.InjectEvidence(c.Request.Context(), evidence.Input{
		Title:           req.Title,
		Source:          req.Source,
		ContentText:     req.ContentText,
		TargetInsightID: req.TargetInsightID,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /api/injections
func (h *EvidenceHandler) List(c *gin.Context) {
	injections, err := h.svc.GetInjections()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"injections": injections})
}

type BriefingHandler struct {
	svc    Service
	mailer mail.Sender
	log    *logger.Logger
}

// GET /api/briefing
func (h *BriefingHandler) Cards(c *gin.Context) {
	cards, err := h.svc.GetBriefing()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"briefing_cards": cards})
}

type emailBriefingRequest struct {
	To   string `json:"to" binding:"required,email"`
	Name string `json:"name"`
}

// POST /api/briefing/email
func (h *BriefingHandler) Email(c *gin.Context) {
	if h.mailer == nil {
		RespondError(c, http.StatusServiceUnavailable, "mail_not_configured", fmt.Errorf("briefing email is not configured"))
		return
	}
	var req emailBriefingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	overview, err := h.svc.GetOverview()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	cards, err := h.svc.GetBriefing()
	if err != nil {
		respondStoreError(c, err)
		return
	}

	res, err := mail.SendBriefing(c.Request.Context(), h.mailer, mail.EmailAddress{Email: req.To, Name: req.Name}, overview.Meta, cards)
	if err != nil {
		h.log.Error("sending briefing failed", "to_email", req.To, "error", err)
		RespondError(c, http.StatusBadGateway, "mail_send_failed", err)
		return
	}
	h.log.Info("briefing sent", "to_email", req.To, "cards", len(cards), "message_id", res.MessageID)
	c.JSON(http.StatusAccepted, gin.H{"status": "sent", "cards": len(cards), "message_id": res.MessageID})
}
