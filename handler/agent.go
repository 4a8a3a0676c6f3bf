package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/pkg/logger"
	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/service"
)

type AgentHandler struct {
	agent    service.AgentInvoker
	csvStore *service.CSVStore
}

func NewAgentHandler(agent service.AgentInvoker, csvStore *service.CSVStore) *AgentHandler {
	return &AgentHandler{
		agent:    agent,
		csvStore: csvStore,
	}
}

type invokeAgentRequest struct {
	InputText string `json:"inputText"`
	SessionID string `json:"sessionId"`
}

// Invoke handles the synchronous agent invocation endpoint.
func (h *AgentHandler) Invoke(c *gin.Context) {
	var req invokeAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.InputText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing inputText"})
		return
	}

	ctx := c.Request.Context()
	logger.Info(ctx, "invoking agent", "input", truncate(req.InputText, 100))

	reply, err := h.agent.Invoke(ctx, req.InputText, req.SessionID)
	if err != nil {
		logger.Error(ctx, "agent invocation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"output":    reply.Output,
		"sessionId": reply.SessionID,
		"runtime":   "AgentCore-HTTPS",
	})
}

type storeCSVRequest struct {
	Data     []map[string]any `json:"data"`
	Filename string           `json:"filename"`
}

// StoreCSVData retains uploaded CSV rows for the local analysis mode.
func (h *AgentHandler) StoreCSVData(c *gin.Context) {
	var req storeCSVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	rows := h.csvStore.Store(req.Filename, req.Data)
	logger.Info(c.Request.Context(), "stored CSV data", "filename", req.Filename, "rows", rows)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "CSV data received",
		"rows":    rows,
	})
}

type analyzeLocalRequest struct {
	Data      []map[string]any `json:"data"`
	BaseBank  string           `json:"baseBank"`
	PeerBanks []string         `json:"peerBanks"`
	Metric    string           `json:"metric"`
}

// AnalyzeLocalData builds a peer-analysis prompt from uploaded CSV rows
// and invokes the agent synchronously. When the request carries no rows
// the previously stored dataset is used.
func (h *AgentHandler) AnalyzeLocalData(c *gin.Context) {
	var req analyzeLocalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if len(req.Data) == 0 {
		req.Data = h.csvStore.Rows()
		logger.Info(ctx, "using stored CSV dataset",
			"filename", h.csvStore.Filename(),
			"rows", len(req.Data),
		)
	}
	logger.Info(ctx, "analyzing local CSV data",
		"base_bank", req.BaseBank,
		"peer_banks", strings.Join(req.PeerBanks, ", "),
		"metric", req.Metric,
	)

	reply, err := h.agent.Invoke(ctx, buildAnalysisPrompt(&req), "")
	if err != nil {
		logger.Error(ctx, "local data analysis failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": reply.Output})
}

func buildAnalysisPrompt(req *analyzeLocalRequest) string {
	sample := req.Data
	if len(sample) > 3 {
		sample = sample[:3]
	}
	sampleJSON, _ := json.Marshal(sample)

	return fmt.Sprintf(`Analyze this peer banking data comparing %s vs %s on metric: %s.

Data summary: %d data points
Sample: %s

Provide a 2-paragraph analysis highlighting:
1. Performance comparison between the banks
2. Key trends and insights from the data

Keep it concise and business-focused.`,
		req.BaseBank, strings.Join(req.PeerBanks, ", "), req.Metric, len(req.Data), sampleJSON)
}

// truncate cuts s to at most n runes for log output.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
