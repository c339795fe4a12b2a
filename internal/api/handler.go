package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-jobsearch-malawi/internal/filter"
	"go-jobsearch-malawi/internal/models"
)

// JobSearcher is what the handlers need from the pipeline.
type JobSearcher interface {
	SearchByCategory(ctx context.Context, category, userQualifications string) []models.Job
	AllRecentJobs(ctx context.Context) []models.Job
	JobDetails(ctx context.Context, jobURL string) (*models.JobDetail, error)
}

type Handler struct {
	pipeline JobSearcher
}

func NewHandler(pipeline JobSearcher) *Handler {
	return &Handler{pipeline: pipeline}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/job-categories", h.GetJobCategories)
	r.POST("/jobs", h.GetJobsByCategory)
	r.GET("/jobs/recent", h.GetAllRecentJobs)
	r.POST("/job-details", h.GetJobDetails)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Job discovery API is running"})
}

func (h *Handler) GetJobCategories(c *gin.Context) {
	categories := make([]gin.H, 0, len(filter.CategoryOrder))
	for _, key := range filter.CategoryOrder {
		categories = append(categories, gin.H{
			"value":         key,
			"name":          titleCase(key),
			"keyword_count": len(filter.JobCategories[key]),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
		"approach":   "scrape_all_then_filter",
	})
}

type jobSearchRequest struct {
	JobCategory        string `json:"job_category"`
	UserQualifications string `json:"user_qualifications"`
}

func (h *Handler) GetJobsByCategory(c *gin.Context) {
	var req jobSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.JobCategory == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "job_category is required",
		})
		return
	}

	if !filter.KnownCategory(req.JobCategory) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("Invalid job_category. Available categories: %s", strings.Join(filter.CategoryOrder, ", ")),
		})
		return
	}

	jobs := h.pipeline.SearchByCategory(c.Request.Context(), req.JobCategory, req.UserQualifications)

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"total_jobs_found":    len(jobs),
		"filtered_jobs_count": len(jobs),
		"category":            req.JobCategory,
		"jobs":                jobs,
		"source":              models.SourceWebsite,
		"filtering_method":    "scrape_all_then_filter",
		"message":             fmt.Sprintf("Found %d jobs for '%s' category", len(jobs), req.JobCategory),
	})
}

func (h *Handler) GetAllRecentJobs(c *gin.Context) {
	jobs := h.pipeline.AllRecentJobs(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"total_jobs_found": len(jobs),
		"jobs":             jobs,
		"source":           models.SourceWebsite,
		"message":          fmt.Sprintf("Found %d recent jobs across all categories", len(jobs)),
	})
}

type jobDetailsRequest struct {
	JobURL string `json:"job_url"`
}

func (h *Handler) GetJobDetails(c *gin.Context) {
	var req jobDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.JobURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "job_url is required",
		})
		return
	}

	details, err := h.pipeline.JobDetails(c.Request.Context(), req.JobURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"job_url": req.JobURL,
			"details": nil,
			"error":   err.Error(),
			"message": "An error occurred while fetching job details. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"job_url": req.JobURL,
		"details": details,
	})
}

// titleCase turns "human_resources" into "Human Resources".
func titleCase(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
