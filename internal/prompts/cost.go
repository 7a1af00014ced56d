package prompts

import "math"

// Operation names a billable research or generation step
type Operation string

const (
	OpDiscovery         Operation = "figure_discovery"
	OpNameSearch        Operation = "figure_name_search"
	OpAnalysis          Operation = "figure_analysis"
	OpStyleGuide        Operation = "style_guide_generation"
	OpVerification      Operation = "figure_verification"
	OpExampleGeneration Operation = "example_generation"
	OpRefinement        Operation = "search_refinement"
)

// EstimatedTokens is the rough token usage per unit of each operation.
// Discovery and name search are per figure requested; example generation is per example.
var EstimatedTokens = map[Operation]int{
	OpDiscovery:         800,
	OpNameSearch:        800,
	OpAnalysis:          1200,
	OpStyleGuide:        400,
	OpVerification:      300,
	OpExampleGeneration: 600,
	OpRefinement:        600,
}

// PricePerThousandTokens is a blended input/output price in USD
const PricePerThousandTokens = 0.002

// EstimateCost returns the approximate USD cost of count units of op,
// rounded to six decimals. Unknown operations cost 0.
func EstimateCost(op Operation, count int) float64 {
	tokens, ok := EstimatedTokens[op]
	if !ok || count < 1 {
		return 0
	}
	cost := float64(tokens*count) / 1000 * PricePerThousandTokens
	return math.Round(cost*1e6) / 1e6
}
