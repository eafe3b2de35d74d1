package v1

import (
	"net/http"

	"internmatch-backend/internal/delivery/http/response"
	"internmatch-backend/internal/domain"
	"internmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUC domain.FeedUsecase
}

func NewFeedHandler(public *gin.RouterGroup, feedUC domain.FeedUsecase) {
	handler := &FeedHandler{feedUC: feedUC}

	feed := public.Group("/feed")
	{
		feed.GET("", handler.Next)
		feed.POST("/swipes", handler.Swipe)
	}
}

// subjectFromContext resolves the caller identity set by the auth middleware.
// Anonymous callers are identified by their device header.
func subjectFromContext(c *gin.Context) domain.Subject {
	return domain.Subject{
		UserID:   c.GetString(string(domain.KeyUserID)),
		DeviceID: c.GetString(string(domain.KeyDeviceID)),
	}
}

type SwipeRequest struct {
	JobID     string `json:"job_id" binding:"required"`
	Direction string `json:"direction" binding:"required,oneof=left right"`
}

// Next godoc
// @Summary      Next feed batch
// @Description  Returns the next batch of unseen, unsaved jobs for the swipe deck
// @Tags         feed
// @Produce      json
// @Param        cursor            query     string  false  "Opaque page cursor"
// @Param        remote            query     bool    false  "Remote jobs only"
// @Param        visa_sponsorship  query     bool    false  "Visa-sponsoring jobs only"
// @Param        job_type          query     string  false  "Exact job type"
// @Param        locations         query     string  false  "Comma-separated location list"
// @Param        salary_min        query     int     false  "Minimum salary"
// @Param        salary_max        query     int     false  "Maximum salary"
// @Param        X-Device-ID       header    string  false  "Anonymous device scope"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /feed [get]
func (h *FeedHandler) Next(c *gin.Context) {
	subject := subjectFromContext(c)
	if subject.ID() == "" {
		c.Error(apperror.BadRequest("X-Device-ID header or authentication required"))
		return
	}

	batch, err := h.feedUC.NextBatch(c.Request.Context(), subject, filtersFromQuery(c), c.Query("cursor"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Feed batch", batch)
}

// Swipe godoc
// @Summary      Record a swipe
// @Description  Left marks the job seen; right marks it seen and saves it (right requires auth)
// @Tags         feed
// @Accept       json
// @Produce      json
// @Param        swipe        body      SwipeRequest  true  "Swipe JSON"
// @Param        X-Device-ID  header    string        false  "Anonymous device scope"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /feed/swipes [post]
func (h *FeedHandler) Swipe(c *gin.Context) {
	subject := subjectFromContext(c)
	if subject.ID() == "" {
		c.Error(apperror.BadRequest("X-Device-ID header or authentication required"))
		return
	}

	var req SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	var err error
	if req.Direction == "right" {
		err = h.feedUC.SwipeRight(c.Request.Context(), subject, req.JobID)
	} else {
		err = h.feedUC.SwipeLeft(c.Request.Context(), subject, req.JobID)
	}
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Swipe recorded", nil)
}
