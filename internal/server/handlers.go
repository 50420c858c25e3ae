package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alexanderramin/archsage/internal/contract"
	"github.com/alexanderramin/archsage/internal/intelligence"
	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/alexanderramin/archsage/internal/llm"
	"github.com/alexanderramin/archsage/internal/persona"
	"github.com/alexanderramin/archsage/internal/prompt"
	"github.com/alexanderramin/archsage/internal/retrieval"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusClientClosedRequest is the conventional status for a caller that
// disconnected before the response was ready.
const statusClientClosedRequest = 499

const availabilityTimeout = 2 * time.Second

type handlers struct {
	analysis  intelligence.AnalysisService
	personas  *persona.Registry
	store     *knowledge.Store
	retrieval *retrieval.Engine
	gateway   llm.Gateway
	version   string
	logger    *zap.Logger
}

// BatchRequest is the body of POST /api/v1/analyze/batch.
type BatchRequest struct {
	Requests []contract.AnalyzeRequest `json:"requests"`
}

// BatchResponse is the body returned by POST /api/v1/analyze/batch.
type BatchResponse struct {
	Results []*contract.StructuredResponse `json:"results"`
}

// PersonaView describes a persona without its full preamble.
type PersonaView struct {
	ID               string   `json:"id"`
	DisplayName      string   `json:"displayName"`
	ExpertiseSummary string   `json:"expertiseSummary"`
	Variables        []string `json:"variables"`
}

// DomainSummary counts the entries of one knowledge domain and lists the
// query keywords that route to it.
type DomainSummary struct {
	Domain   knowledge.Domain `json:"domain"`
	Entries  int              `json:"entries"`
	Keywords []string         `json:"keywords"`
}

func (h *handlers) health(c *gin.Context) {
	body := gin.H{"status": "ok", "version": h.version}
	if h.gateway != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), availabilityTimeout)
		defer cancel()
		body["generation"] = gin.H{
			"backend":   h.gateway.Name(),
			"available": h.gateway.Available(ctx),
		}
	}
	c.JSON(http.StatusOK, body)
}

// analyze handles POST /api/v1/analyze
func (h *handlers) analyze(c *gin.Context) {
	var req contract.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.analysis.Analyze(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// analyzeBatch handles POST /api/v1/analyze/batch
func (h *handlers) analyzeBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	results, err := h.analysis.AnalyzeBatch(c.Request.Context(), req.Requests)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, BatchResponse{Results: results})
}

// previewPrompt handles POST /api/v1/prompt/preview
func (h *handlers) previewPrompt(c *gin.Context) {
	var req contract.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	preview, err := h.analysis.Preview(req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

func (h *handlers) listPersonas(c *gin.Context) {
	list := h.personas.List()
	views := make([]PersonaView, 0, len(list))
	for _, p := range list {
		views = append(views, PersonaView{
			ID:               p.ID,
			DisplayName:      p.DisplayName,
			ExpertiseSummary: p.ExpertiseSummary,
			Variables:        prompt.Variables(p.Preamble),
		})
	}
	c.JSON(http.StatusOK, gin.H{"personas": views})
}

func (h *handlers) listKnowledge(c *gin.Context) {
	domains := h.store.AllDomains()
	out := make([]DomainSummary, 0, len(domains))
	for _, d := range domains {
		out = append(out, DomainSummary{
			Domain:   d,
			Entries:  len(h.store.EntriesForDomain(d)),
			Keywords: h.retrieval.Keywords(d),
		})
	}
	c.JSON(http.StatusOK, gin.H{"domains": out, "total": h.store.Len()})
}

func (h *handlers) domainKnowledge(c *gin.Context) {
	d, ok := knowledge.ParseDomain(c.Param("domain"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown domain: " + c.Param("domain")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"domain": d, "entries": h.store.EntriesForDomain(d)})
}

func (h *handlers) knowledgeEntry(c *gin.Context) {
	d, ok := knowledge.ParseDomain(c.Param("domain"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown domain: " + c.Param("domain")})
		return
	}
	e, ok := h.store.Lookup(c.Param("id"))
	if !ok || e.Domain != d {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown entry: " + c.Param("id")})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *handlers) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, intelligence.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, intelligence.ErrCancelled):
		c.JSON(statusClientClosedRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
