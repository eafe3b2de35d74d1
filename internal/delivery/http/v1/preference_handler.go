package v1

import (
	"net/http"

	"internmatch-backend/internal/delivery/http/response"
	"internmatch-backend/internal/domain"
	"internmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PreferenceHandler struct {
	userUC domain.UserUsecase
}

func NewPreferenceHandler(protected *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &PreferenceHandler{userUC: userUC}

	prefs := protected.Group("/preferences")
	{
		prefs.GET("", handler.Get)
		prefs.PUT("", handler.Update)
	}
}

// Get godoc
// @Summary      Get preferences
// @Description  Return the caller's stored job preferences
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /preferences [get]
// @Security     BearerAuth
func (h *PreferenceHandler) Get(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	prefs, err := h.userUC.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Preferences", prefs)
}

// Update godoc
// @Summary      Update preferences
// @Description  Merge the submitted fields into the stored preferences; omitted fields are untouched
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        preferences  body      domain.PreferencesUpdate  true  "Partial preferences JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /preferences [put]
// @Security     BearerAuth
func (h *PreferenceHandler) Update(c *gin.Context) {
	var update domain.PreferencesUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	prefs, err := h.userUC.UpdatePreferences(c.Request.Context(), userID, update)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Preferences updated", prefs)
}
