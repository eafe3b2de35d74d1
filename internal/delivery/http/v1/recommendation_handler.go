package v1

import (
	"net/http"
	"strconv"

	"internmatch-backend/internal/delivery/http/response"
	"internmatch-backend/internal/domain"
	"internmatch-backend/internal/recommend"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	ranker       *recommend.Ranker
	defaultLimit int
}

func NewRecommendationHandler(public *gin.RouterGroup, ranker *recommend.Ranker, defaultLimit int) {
	handler := &RecommendationHandler{ranker: ranker, defaultLimit: defaultLimit}

	public.GET("/recommendations", handler.List)
}

// List godoc
// @Summary      Recommended jobs
// @Description  Jobs ranked by match score plus similarity to the caller's saved and applied history; anonymous callers get preference-neutral ranking
// @Tags         recommendations
// @Produce      json
// @Param        limit  query     int  false  "Maximum results"
// @Success      200  {object}  response.Response
// @Router       /recommendations [get]
func (h *RecommendationHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	limit := h.defaultLimit
	if v, ok := c.GetQuery("limit"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	jobs, err := h.ranker.Recommend(c.Request.Context(), userID, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recommendations", jobs)
}
