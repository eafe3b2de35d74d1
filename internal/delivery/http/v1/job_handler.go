package v1

import (
	"net/http"
	"strconv"
	"strings"

	"internmatch-backend/internal/delivery/http/response"
	"internmatch-backend/internal/domain"
	"internmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := public.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.GET("/:id", handler.GetDetails)
	}
}

// filtersFromQuery builds JobFilters from the listing query params. Absent
// params leave the corresponding filter unset.
func filtersFromQuery(c *gin.Context) domain.JobFilters {
	var filters domain.JobFilters

	if v, ok := c.GetQuery("remote"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			filters.Remote = &b
		}
	}
	if v, ok := c.GetQuery("visa_sponsorship"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			filters.VisaSponsorship = &b
		}
	}
	filters.JobType = c.Query("job_type")

	if v, ok := c.GetQuery("locations"); ok && v != "" {
		for _, loc := range strings.Split(v, ",") {
			if loc = strings.TrimSpace(loc); loc != "" {
				filters.Locations = append(filters.Locations, loc)
			}
		}
	}

	var salaryRange domain.SalaryRange
	if v, ok := c.GetQuery("salary_min"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			salaryRange.Min = &n
		}
	}
	if v, ok := c.GetQuery("salary_max"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			salaryRange.Max = &n
		}
	}
	if salaryRange.Min != nil || salaryRange.Max != nil {
		filters.SalaryRange = &salaryRange
	}

	return filters
}

// List godoc
// @Summary      List jobs with match scores
// @Description  Cursor-paginated job listing, scored against the caller's preferences when authenticated
// @Tags         jobs
// @Produce      json
// @Param        cursor            query     string  false  "Opaque page cursor"
// @Param        remote            query     bool    false  "Remote jobs only"
// @Param        visa_sponsorship  query     bool    false  "Visa-sponsoring jobs only"
// @Param        job_type          query     string  false  "Exact job type"
// @Param        locations         query     string  false  "Comma-separated location list"
// @Param        salary_min        query     int     false  "Minimum salary"
// @Param        salary_max        query     int     false  "Maximum salary"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	filters := filtersFromQuery(c)

	page, err := h.jobUC.ListJobs(c.Request.Context(), userID, filters, c.Query("cursor"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", page)
}

// GetDetails godoc
// @Summary      Get job details
// @Description  Get one job with the caller's match score and insights
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	scored, err := h.jobUC.GetJobDetails(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	if scored == nil {
		c.Error(apperror.NotFound("Job not found"))
		return
	}

	response.Success(c, http.StatusOK, "Job details", scored)
}
