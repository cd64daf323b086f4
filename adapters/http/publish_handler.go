package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	publishUC "github.com/haanhpham/autopress/internal/application/usecase/publish"
)

type PublishHandler struct {
	requestPublishUseCase *publishUC.RequestPublishUseCase
	getJobUseCase         *publishUC.GetJobUseCase
}

func NewPublishHandler(requestUC *publishUC.RequestPublishUseCase, getJobUC *publishUC.GetJobUseCase) *PublishHandler {
	return &PublishHandler{
		requestPublishUseCase: requestUC,
		getJobUseCase:         getJobUC,
	}
}

func (h *PublishHandler) CreatePublishJob(c *gin.Context) {
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	output, err := h.requestPublishUseCase.Execute(c.Request.Context(), req.ToJobRequest())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "publish job accepted, processing ...",
		"job_id":  output.JobID,
	})
}

func (h *PublishHandler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'id' is not a valid UUID"})
		return
	}

	j, err := h.getJobUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToJobDTO(j))
}
