package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/pkg/logger"
	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/service"
)

type FilingsHandler struct {
	edgar *service.EdgarService
	banks *service.BankDirectory
}

func NewFilingsHandler(edgar *service.EdgarService, banks *service.BankDirectory) *FilingsHandler {
	return &FilingsHandler{
		edgar: edgar,
		banks: banks,
	}
}

type getFilingsRequest struct {
	BankName string `json:"bankName"`
	CIK      string `json:"cik"`
}

// GetSECFilings fetches recent 10-K and 10-Q filings for a CIK. Fetch
// failures come back as success=false with empty lists, never as an
// HTTP error.
func (h *FilingsHandler) GetSECFilings(c *gin.Context) {
	var req getFilingsRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.BankName == "" && req.CIK == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing bankName or cik"})
		return
	}

	ctx := c.Request.Context()
	logger.Info(ctx, "fetching SEC filings", "bank_name", req.BankName, "cik", req.CIK)

	result := h.edgar.Filings(ctx, req.BankName, req.CIK)

	resp := gin.H{
		"success": result.Success,
		"10-K":    result.TenK,
		"10-Q":    result.TenQ,
	}
	if result.Success {
		resp["response"] = result.Response
	} else {
		resp["error"] = result.Error
	}

	c.JSON(http.StatusOK, resp)
}

type searchBanksRequest struct {
	Query string `json:"query"`
}

// SearchBanks searches the static bank directory, falling back to the
// SEC company tickers file when nothing matches.
func (h *FilingsHandler) SearchBanks(c *gin.Context) {
	var req searchBanksRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query"})
		return
	}

	ctx := c.Request.Context()
	results := h.banks.Search(ctx, req.Query)
	logger.Info(ctx, "bank search", "query", req.Query, "results", len(results))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": results,
	})
}
