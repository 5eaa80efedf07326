package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/macrolens/mealscore/internal/domain"
	"github.com/macrolens/mealscore/internal/usecase"
)

type analyzeMealParams struct {
	AgeGroup string                   `json:"ageGroup" description:"Age group id or bucket label, e.g. toddler or 1-3y"`
	Items    []domain.MealItemRequest `json:"items" description:"Catalog food ids with quantities in grams"`
	Language string                   `json:"language,omitempty" description:"Language for advisory messages (en or ar)"`
}

type listFoodsParams struct {
	Query           string `json:"query,omitempty" description:"Free-text food name search"`
	Category        string `json:"category,omitempty" description:"Food category filter"`
	ProcessingLevel int    `json:"processingLevel,omitempty" description:"NOVA level filter 1-4"`
}

type toolFunc func(*gin.Context, *protocol.CallToolRequest) (*protocol.CallToolResult, error)

func (h *Handler) tools() map[string]toolFunc {
	return map[string]toolFunc{
		"analyze_meal":    h.toolAnalyzeMeal,
		"list_foods":      h.toolListFoods,
		"list_age_groups": h.toolListAgeGroups,
	}
}

// CallTool runs a named tool from a tool-call request body
func (h *Handler) CallTool(c *gin.Context) {
	if h.analysis == nil || h.foods == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "tool services not configured"})
		return
	}

	var request protocol.CallToolRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	tool, ok := h.tools()[request.Name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown tool: %s", request.Name)})
		return
	}

	result, err := tool(c, &request)
	if err != nil {
		if errorStatus(err) == http.StatusInternalServerError {
			log.Printf("[TOOLS] %s failed: %v", request.Name, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		// caller mistakes are reported inside the result so agents can correct them
		result = &protocol.CallToolResult{
			Content: []protocol.Content{textContent(err.Error())},
			IsError: true,
		}
	}

	c.JSON(http.StatusOK, result)
}

// extractParams decodes the request arguments into target
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal arguments: %v", domain.ErrInvalidInput, err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("%w: failed to unmarshal parameters: %v", domain.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) toolAnalyzeMeal(c *gin.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params analyzeMealParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	result, err := h.analysis.AnalyzeMeal(c.Request.Context(), &domain.MealAnalysisRequest{
		AgeGroup: params.AgeGroup,
		Items:    params.Items,
	})
	if err != nil {
		return nil, err
	}

	tag := supportedLanguages[0]
	if params.Language != "" {
		_, index := language.MatchStrings(languageMatcher, params.Language)
		tag = supportedLanguages[index]
	}

	return jsonResult(analysisResponse{
		AnalysisResult:  result,
		Language:        tag.String(),
		Warnings:        localizeAdvisories(tag, result.Warnings),
		Recommendations: localizeAdvisories(tag, result.Recommendations),
	})
}

func (h *Handler) toolListFoods(_ *gin.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params listFoodsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	foods, err := h.foods.ListFoods(usecase.FoodFilter{
		Query:           params.Query,
		Category:        domain.FoodCategory(params.Category),
		ProcessingLevel: domain.ProcessingLevel(params.ProcessingLevel),
	})
	if err != nil {
		return nil, err
	}

	return jsonResult(map[string]interface{}{"foods": foods, "count": len(foods)})
}

func (h *Handler) toolListAgeGroups(_ *gin.Context, _ *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	return jsonResult(map[string]interface{}{"ageGroups": h.foods.AgeGroupReferences()})
}

func textContent(text string) protocol.TextContent {
	return protocol.TextContent{
		Type: "text",
		Text: text,
	}
}

func jsonResult(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{textContent(string(jsonBytes))},
	}, nil
}
