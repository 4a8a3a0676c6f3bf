package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/model"
	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/pkg/logger"
	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/service"
)

type DocumentsHandler struct {
	documents *service.DocumentService
}

func NewDocumentsHandler(documents *service.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{documents: documents}
}

type uploadedFile struct {
	Name    string `json:"name"`
	Content string `json:"content"` // base64
	Size    int64  `json:"size"`
}

type uploadPDFRequest struct {
	Files    []uploadedFile `json:"files"`
	BankName string         `json:"bankName"`
}

// UploadPDF ingests one or more base64-encoded filing PDFs. Each file is
// processed independently; extraction and storage failures degrade to
// placeholder metadata and a missing storage key.
func (h *DocumentsHandler) UploadPDF(c *gin.Context) {
	var req uploadPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}

	ctx := c.Request.Context()
	logger.Info(ctx, "processing uploaded PDFs", "count", len(req.Files))

	documents := make([]model.Document, 0, len(req.Files))
	for _, file := range req.Files {
		content, err := base64.StdEncoding.DecodeString(file.Content)
		if err != nil {
			logger.Warn(ctx, "failed to decode file content", "filename", file.Name, "error", err)
			content = nil
		}

		documents = append(documents, h.documents.Ingest(ctx, content, file.Name, req.BankName))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"documents": documents,
	})
}
