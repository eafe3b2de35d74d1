package v1

import (
	"net/http"

	"internmatch-backend/internal/delivery/http/response"
	"internmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	newsUC domain.NewsUsecase
}

func NewNewsHandler(public *gin.RouterGroup, newsUC domain.NewsUsecase) {
	handler := &NewsHandler{newsUC: newsUC}

	public.GET("/news", handler.List)
}

// List godoc
// @Summary      Startup news
// @Description  Cursor-paginated startup news feed
// @Tags         news
// @Produce      json
// @Param        cursor  query     string  false  "Opaque page cursor"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /news [get]
func (h *NewsHandler) List(c *gin.Context) {
	page, err := h.newsUC.List(c.Request.Context(), c.Query("cursor"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "News", page)
}
