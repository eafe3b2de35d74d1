package v1

import (
	"net/http"

	"internmatch-backend/internal/delivery/http/response"
	"internmatch-backend/internal/domain"
	"internmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SavedJobHandler struct {
	savedUC domain.SavedJobUsecase
}

func NewSavedJobHandler(protected *gin.RouterGroup, savedUC domain.SavedJobUsecase) {
	handler := &SavedJobHandler{savedUC: savedUC}

	saved := protected.Group("/saved-jobs")
	{
		saved.GET("", handler.List)
		saved.GET("/ids", handler.ListIDs)
		saved.POST("", handler.Save)
		saved.DELETE("/:jobId", handler.Unsave)
	}
}

type SaveJobRequest struct {
	JobID string `json:"job_id" binding:"required"`
	Notes string `json:"notes"`
}

// Save godoc
// @Summary      Save a job
// @Description  Idempotently save a job for the authenticated user
// @Tags         saved-jobs
// @Accept       json
// @Produce      json
// @Param        saved  body      SaveJobRequest  true  "Save JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /saved-jobs [post]
// @Security     BearerAuth
func (h *SavedJobHandler) Save(c *gin.Context) {
	var req SaveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	id, err := h.savedUC.Save(c.Request.Context(), userID, req.JobID, req.Notes)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job saved", gin.H{"id": id})
}

// Unsave godoc
// @Summary      Unsave a job
// @Tags         saved-jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /saved-jobs/{jobId} [delete]
// @Security     BearerAuth
func (h *SavedJobHandler) Unsave(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	if err := h.savedUC.Unsave(c.Request.Context(), userID, c.Param("jobId")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job unsaved", nil)
}

// List godoc
// @Summary      List saved jobs
// @Tags         saved-jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /saved-jobs [get]
// @Security     BearerAuth
func (h *SavedJobHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	saved, err := h.savedUC.List(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved jobs", saved)
}

// ListIDs godoc
// @Summary      List saved job IDs
// @Description  Lightweight ID-only listing used by the client to grey out saved cards
// @Tags         saved-jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /saved-jobs/ids [get]
// @Security     BearerAuth
func (h *SavedJobHandler) ListIDs(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	ids, err := h.savedUC.ListJobIDs(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved job IDs", ids)
}
