package usecase

import (
	"context"
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/macrolens/mealscore/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	punctuationRegex    = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
	sizePatternRegex    = regexp.MustCompile(
		`(?i)\b\d+\.?\d*\s*(?:fl\s*oz|oz|ml|liters?|l|lbs?|kg|grams?|g|cups?|tbsp|tsp|pieces?)\b`,
	)
)

const fuzzyWeightFactor = 0.8 // fuzzy token hits count 80% of an exact hit

// stopWords are dropped before matching
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "with": true, "for": true,
	"per": true, "serving": true, "portion": true,
	"cup": true, "cups": true, "tbsp": true, "tsp": true, "slice": true,
	"piece": true, "pieces": true, "bowl": true, "plate": true,
}

// MatchConfig holds configuration for the food matcher
type MatchConfig struct {
	MinConfidenceThreshold float64
	EnableFuzzyMatching    bool
	FuzzyEditDistance      int
	EnableDebugLogging     bool
}

// MatchResult is the score of one candidate description against a query
type MatchResult struct {
	Score         float64  `json:"score"`
	MatchedTokens []string `json:"matchedTokens,omitempty"`
}

// FoodMatcher scores free-text food queries against catalog names and USDA
// descriptions
type FoodMatcher struct {
	minConfidenceThreshold float64
	enableFuzzyMatching    bool
	fuzzyEditDistance      int
	enableDebugLogging     bool
}

// NewFoodMatcher creates a matcher with the given configuration
func NewFoodMatcher(config MatchConfig) *FoodMatcher {
	threshold := config.MinConfidenceThreshold
	if threshold <= 0 {
		threshold = 40.0
	}

	fuzzyDist := config.FuzzyEditDistance
	if fuzzyDist <= 0 {
		fuzzyDist = 1
	}

	return &FoodMatcher{
		minConfidenceThreshold: threshold,
		enableFuzzyMatching:    config.EnableFuzzyMatching,
		fuzzyEditDistance:      fuzzyDist,
		enableDebugLogging:     config.EnableDebugLogging,
	}
}

// Threshold returns the minimum score a candidate needs to count as a match
func (m *FoodMatcher) Threshold() float64 {
	return m.minConfidenceThreshold
}

// Score computes the similarity (0-100) between a query and a candidate.
// Query token coverage dominates, with candidate coverage, Jaccard overlap and a
// substring bonus making up the rest.
func (m *FoodMatcher) Score(query, candidate string) MatchResult {
	queryTokens := tokenize(cleanForMatching(query))
	candidateTokens := tokenize(candidate)

	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return MatchResult{}
	}

	hits, matched := m.queryHits(queryTokens, candidateTokens)
	queryCoverage := hits / float64(len(queryTokens))

	candidateMatched, _ := findIntersection(candidateTokens, queryTokens)
	candidateCoverage := float64(candidateMatched) / float64(len(candidateTokens))

	jaccard := float64(len(matched)) / float64(findUnion(queryTokens, candidateTokens))

	score := (queryCoverage*0.60 + candidateCoverage*0.20 + jaccard*0.20) * 100

	queryLower := strings.ToLower(strings.TrimSpace(query))
	candidateLower := strings.ToLower(candidate)
	if len(queryLower) > 3 && strings.Contains(candidateLower, queryLower) {
		score += 10
	}

	if score > 100 {
		score = 100
	}

	return MatchResult{Score: score, MatchedTokens: matched}
}

// queryHits counts query tokens present in the candidate, with fuzzy hits
// weighted by fuzzyWeightFactor
func (m *FoodMatcher) queryHits(queryTokens, candidateTokens []string) (float64, []string) {
	candidateSet := make(map[string]bool, len(candidateTokens))
	for _, t := range candidateTokens {
		candidateSet[t] = true
	}

	var (
		hits    float64
		matched []string
		seen    = make(map[string]bool)
	)
	for _, q := range queryTokens {
		if seen[q] {
			continue
		}
		seen[q] = true

		if candidateSet[q] {
			hits++
			matched = append(matched, q)
			continue
		}
		if !m.enableFuzzyMatching {
			continue
		}
		for _, c := range candidateTokens {
			if fuzzyTokenMatch(q, c, m.fuzzyEditDistance) {
				hits += fuzzyWeightFactor
				matched = append(matched, c)
				break
			}
		}
	}
	return hits, matched
}

// RankFoods returns the catalog foods whose name matches query at or above the
// threshold, best first. Ties keep catalog id order.
func (m *FoodMatcher) RankFoods(query string, foods []domain.FoodEntry) []domain.FoodEntry {
	type scored struct {
		food  domain.FoodEntry
		score float64
	}

	var candidates []scored
	for _, food := range foods {
		result := m.Score(query, food.Name)
		if m.enableDebugLogging {
			log.Printf("[MATCH] %q vs %q | Score: %.1f | Matched: %v", query, food.Name, result.Score, result.MatchedTokens)
		}
		if result.Score >= m.minConfidenceThreshold {
			candidates = append(candidates, scored{food: food, score: result.Score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].food.ID < candidates[j].food.ID
	})

	ranked := make([]domain.FoodEntry, len(candidates))
	for i, c := range candidates {
		ranked[i] = c.food
	}
	return ranked
}

// BestUSDAMatch picks the USDA search hit that best matches query. A best hit
// below the threshold is still returned together with domain.ErrLowConfidence.
func (m *FoodMatcher) BestUSDAMatch(ctx context.Context, query string, foods []domain.USDAFood) (*domain.USDAFood, MatchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, MatchResult{}, domain.ErrInvalidInput
	}
	if len(foods) == 0 {
		return nil, MatchResult{}, domain.ErrProductNotFound
	}

	var (
		best       *domain.USDAFood
		bestResult = MatchResult{Score: -1}
	)
	for i := range foods {
		select {
		case <-ctx.Done():
			return nil, MatchResult{}, ctx.Err()
		default:
		}

		result := m.Score(query, foods[i].Description)
		if m.enableDebugLogging {
			log.Printf("[MATCH] USDA: %q | DataType: %s | Score: %.1f", foods[i].Description, foods[i].DataType, result.Score)
		}
		if result.Score > bestResult.Score {
			best = &foods[i]
			bestResult = result
		}
	}

	if bestResult.Score < m.minConfidenceThreshold {
		return best, bestResult, domain.ErrLowConfidence
	}
	return best, bestResult, nil
}

// cleanForMatching strips portion sizes and trailing qualifiers after a comma
func cleanForMatching(name string) string {
	if idx := strings.Index(name, ","); idx > 0 {
		name = name[:idx]
	}
	name = sizePatternRegex.ReplaceAllString(name, " ")
	name = multipleSpacesRegex.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// tokenize splits a string into normalized lowercase tokens, dropping
// punctuation, stop words, single characters and pure numbers
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len([]rune(word)) <= 1 || stopWords[word] || isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fuzzyTokenMatch checks if two tokens are within the edit distance threshold.
// Short tokens never match fuzzily.
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}

	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

// findIntersection returns the count of distinct tokens of tokens2 found in tokens1
func findIntersection(tokens1, tokens2 []string) (int, []string) {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}

	var matched []string
	seen := make(map[string]bool)
	for _, t := range tokens2 {
		if set[t] && !seen[t] {
			matched = append(matched, t)
			seen[t] = true
		}
	}
	return len(matched), matched
}

func findUnion(tokens1, tokens2 []string) int {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}
	for _, t := range tokens2 {
		set[t] = true
	}
	return len(set)
}
