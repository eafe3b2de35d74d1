package v1

import (
	"net/http"

	"internmatch-backend/internal/delivery/http/response"
	"internmatch-backend/internal/domain"
	"internmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	apps := protected.Group("/applications")
	{
		apps.GET("", handler.List)
		apps.POST("", handler.Apply)
		apps.PATCH("/:id/status", handler.UpdateStatus)
	}
}

type ApplyRequest struct {
	JobID string `json:"job_id" binding:"required"`
	Notes string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Apply godoc
// @Summary      Record an application
// @Description  Track that the user applied to a job; duplicates are rejected
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      ApplyRequest  true  "Application JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	app, err := h.appUC.Apply(c.Request.Context(), userID, req.JobID, req.Notes)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application recorded", app)
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Move an application to a new tracker status
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path      string               true  "Application ID"
// @Param        status  body      UpdateStatusRequest  true  "Status JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	status, ok := domain.ParseApplicationStatus(req.Status)
	if !ok {
		c.Error(apperror.BadRequest("Unknown application status"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.appUC.UpdateStatus(c.Request.Context(), userID, c.Param("id"), status); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Status updated", nil)
}

// List godoc
// @Summary      List applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	apps, err := h.appUC.List(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications", apps)
}
