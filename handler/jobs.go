package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/model"
	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/pkg/logger"
	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/service"
)

type JobsHandler struct {
	runner *service.JobRunner
	store  *service.JobStore
}

func NewJobsHandler(runner *service.JobRunner, store *service.JobStore) *JobsHandler {
	return &JobsHandler{
		runner: runner,
		store:  store,
	}
}

type submitJobRequest struct {
	InputText string `json:"inputText"`
	SessionID string `json:"sessionId"`
	JobType   string `json:"jobType"`
}

// Submit creates a job and schedules it, returning the job ID
// immediately.
func (h *JobsHandler) Submit(c *gin.Context) {
	var req submitJobRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.InputText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing inputText"})
		return
	}

	job := h.runner.Submit(req.InputText, req.SessionID, req.JobType)
	logger.Info(c.Request.Context(), "job created",
		"job_id", job.JobID,
		"input", truncate(req.InputText, 100),
	)

	c.JSON(http.StatusOK, gin.H{
		"jobId":  job.JobID,
		"status": job.Status,
	})
}

// Status returns the status-only view of a job. The result payload is
// withheld to keep poll responses small.
func (h *JobsHandler) Status(c *gin.Context) {
	job, ok := h.store.Get(c.Param("jobId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobId":     job.JobID,
		"status":    job.Status,
		"createdAt": job.CreatedAt,
		"updatedAt": job.UpdatedAt,
		"hasResult": job.Result != "",
	})
}

// Result returns the stored output of a terminal job, a processing
// marker while the job is still running, or the error for a failed job.
func (h *JobsHandler) Result(c *gin.Context) {
	job, ok := h.store.Get(c.Param("jobId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	switch job.Status {
	case model.StatusPending, model.StatusProcessing:
		c.JSON(http.StatusOK, gin.H{
			"jobId":   job.JobID,
			"status":  job.Status,
			"message": "Job still processing",
		})
	case model.StatusFailed:
		c.JSON(http.StatusInternalServerError, gin.H{
			"jobId":  job.JobID,
			"status": job.Status,
			"error":  job.ErrorMsg,
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"jobId":       job.JobID,
			"status":      job.Status,
			"result":      job.Result,
			"sessionId":   job.SessionID,
			"createdAt":   job.CreatedAt,
			"completedAt": job.UpdatedAt,
		})
	}
}
