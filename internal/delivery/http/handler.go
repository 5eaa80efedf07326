package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/macrolens/mealscore/internal/domain"
	"github.com/macrolens/mealscore/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analysis *usecase.AnalysisService
	foods    *usecase.FoodService
}

// NewHandler creates a new HTTP handler. Either service may be nil, in which
// case its endpoints answer 501.
func NewHandler(analysis *usecase.AnalysisService, foods *usecase.FoodService) *Handler {
	return &Handler{analysis: analysis, foods: foods}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "mealscore",
		"version": "1.0.0",
	})
}

// analysisResponse is an AnalysisResult with advisories rendered for display
type analysisResponse struct {
	*domain.AnalysisResult
	Language        string              `json:"language"`
	Warnings        []LocalizedAdvisory `json:"warnings"`
	Recommendations []LocalizedAdvisory `json:"recommendations"`
}

// AnalyzeMeal scores a meal of catalog foods for an age group
func (h *Handler) AnalyzeMeal(c *gin.Context) {
	if h.analysis == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "meal analysis service not configured"})
		return
	}

	var req domain.MealAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.analysis.AnalyzeMeal(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	tag := requestLanguage(c)
	c.JSON(http.StatusOK, analysisResponse{
		AnalysisResult:  result,
		Language:        tag.String(),
		Warnings:        localizeAdvisories(tag, result.Warnings),
		Recommendations: localizeAdvisories(tag, result.Recommendations),
	})
}

// ListFoods returns catalog foods, optionally filtered by ?q=, ?category= and
// ?processingLevel=
func (h *Handler) ListFoods(c *gin.Context) {
	if h.foods == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "food catalog not configured"})
		return
	}

	filter := usecase.FoodFilter{
		Query:    c.Query("q"),
		Category: domain.FoodCategory(c.Query("category")),
	}
	if raw := c.Query("processingLevel"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "processingLevel must be an integer 1-4"})
			return
		}
		filter.ProcessingLevel = domain.ProcessingLevel(level)
	}

	foods, err := h.foods.ListFoods(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"foods": foods, "count": len(foods)})
}

// GetFood returns one catalog food
func (h *Handler) GetFood(c *gin.Context) {
	if h.foods == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "food catalog not configured"})
		return
	}

	food, err := h.foods.GetFood(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, food)
}

// ListAgeGroups returns the pediatric reference intake table
func (h *Handler) ListAgeGroups(c *gin.Context) {
	if h.foods == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "food catalog not configured"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ageGroups": h.foods.AgeGroupReferences()})
}

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrFoodNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "internal server error", "requestId": c.GetString(requestIDKey)})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
