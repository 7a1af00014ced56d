package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/ghostwriter/internal/model"
)

// Dialect selects the field layout of a figure list response
type Dialect string

const (
	DialectDiscovery  Dialect = "discovery"
	DialectNameSearch Dialect = "name_search"
	DialectRefinement Dialect = "refinement"
)

// ParseDialect maps a user-supplied dialect name to a Dialect
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "discovery", "description", "":
		return DialectDiscovery, nil
	case "name_search", "name", "name-search":
		return DialectNameSearch, nil
	case "refinement", "refine":
		return DialectRefinement, nil
	default:
		return "", fmt.Errorf("unknown figure dialect: %s (supported: discovery, name_search, refinement)", s)
	}
}

const notSpecified = "Not specified"

var (
	// figureHeadingRe captures name and period from "**Figure 3: Name (Period)**"
	figureHeadingRe = regexp.MustCompile(`\*\*Figure \d+: (.+?)\s*\(([^)]+)\)\*\*`)

	// figureBoundaryRe matches any figure heading, with or without a period
	figureBoundaryRe = regexp.MustCompile(`\*\*Figure \d+:[^*]+\*\*`)
)

// figureRule is the declarative field table for one dialect
type figureRule struct {
	writingStyle  fieldMatcher
	styleDefault  string
	notableWorks  fieldMatcher
	worksDefault  string
	matchCriteria fieldMatcher
	matchDefault  string
	aliases       *fieldMatcher // appended to match criteria as "(Also: ...)"
}

var nameAliases = newFieldMatcher("Also Known As:", "- Also Known As:")

var figureRules = map[Dialect]figureRule{
	DialectDiscovery: {
		writingStyle:  newFieldMatcher("Writing Style:", "- Writing Style:"),
		styleDefault:  notSpecified,
		notableWorks:  newFieldMatcher("Notable Works:", "- Notable Works:"),
		worksDefault:  notSpecified,
		matchCriteria: newFieldMatcher("Match Criteria:", "- Match Criteria:"),
		matchDefault:  notSpecified,
	},
	DialectNameSearch: {
		writingStyle:  newFieldMatcher("Writing Style:", "- Writing Style:"),
		styleDefault:  notSpecified,
		notableWorks:  newFieldMatcher("Notable Works:", "- Notable Works:"),
		worksDefault:  notSpecified,
		matchCriteria: newFieldMatcher("Match Type:", "- Match Type:"),
		matchDefault:  "Name match",
		aliases:       &nameAliases,
	},
	DialectRefinement: {
		writingStyle:  newFieldMatcher("- Style Preview:", "Style Preview:"),
		styleDefault:  "Style not specified",
		notableWorks:  newFieldMatcher("- Available Content:", "Available Content:"),
		worksDefault:  "Content not specified",
		matchCriteria: newFieldMatcher("- Better Match Because:", "Better Match Because:"),
		matchDefault:  "Refinement reason not specified",
	},
}

// figureBlock is a heading paired with the body text that follows it
type figureBlock struct {
	name   string
	period string
	body   string
}

// splitFigures pairs every well-formed heading with the text up to the next
// figure heading of any shape. Text before the first heading is dropped.
func splitFigures(response string) []figureBlock {
	headings := figureHeadingRe.FindAllStringSubmatchIndex(response, -1)
	if len(headings) == 0 {
		return nil
	}
	boundaries := figureBoundaryRe.FindAllStringIndex(response, -1)

	blocks := make([]figureBlock, 0, len(headings))
	for _, h := range headings {
		end := len(response)
		for _, b := range boundaries {
			if b[0] >= h[1] {
				end = b[0]
				break
			}
		}
		blocks = append(blocks, figureBlock{
			name:   strings.TrimSpace(response[h[2]:h[3]]),
			period: strings.TrimSpace(response[h[4]:h[5]]),
			body:   response[h[1]:end],
		})
	}
	return blocks
}

// ParseFigures extracts the figure list from a discovery, name search or
// refinement response. A response without figure headings yields an empty
// list. Headings lacking a "(Period)" are skipped.
//
// Each body is bounded by the next heading of any shape rather than paired
// with headings by position, so a skipped heading never hands its body to
// the following figure and no list is truncated.
func (p *Parser) ParseFigures(response string, dialect Dialect) []model.Figure {
	rule, ok := figureRules[dialect]
	if !ok {
		p.logger.Warn("unknown figure dialect, using discovery", "dialect", dialect)
		rule = figureRules[DialectDiscovery]
	}

	blocks := splitFigures(response)
	if bare := len(figureBoundaryRe.FindAllStringIndex(response, -1)); bare != len(blocks) {
		p.logger.Debug("dropped figure headings without a period",
			"headings", bare, "parsed", len(blocks))
	}

	figures := make([]model.Figure, 0, len(blocks))
	for _, b := range blocks {
		matchCriteria := rule.matchCriteria.value(b.body, rule.matchDefault)
		if rule.aliases != nil {
			if aka, ok := rule.aliases.find(b.body); ok && aka != "" && aka != "None" {
				matchCriteria += fmt.Sprintf(" (Also: %s)", aka)
			}
		}

		figures = append(figures, model.Figure{
			Name:          b.name,
			TimePeriod:    b.period,
			WritingStyle:  rule.writingStyle.value(b.body, rule.styleDefault),
			NotableWorks:  rule.notableWorks.value(b.body, rule.worksDefault),
			MatchCriteria: matchCriteria,
		})
	}

	p.logger.Debug("parsed figures", "dialect", dialect, "count", len(figures))
	return figures
}
