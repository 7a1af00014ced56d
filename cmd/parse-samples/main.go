// Demo program that runs every response parser over built-in sample
// responses, including the malformed shapes real models produce.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ppiankov/ghostwriter/internal/extract"
)

const discoverySample = `Here are some figures matching your criteria:

**Figure 1: Mark Twain (1835-1910)**
- Writing Style: Humorous, satirical, vernacular
- Notable Works: Adventures of Huckleberry Finn, The Innocents Abroad
- Match Criteria: Quintessential American humorist

**Figure 2: Dorothy Parker**
- Writing Style: Acerbic wit
(no period given, this one is skipped)

**Figure 3: Oscar Wilde (1854-1900)**
- Writing Style: Epigrammatic and flamboyant
- Match Criteria: Master of the witty aside`

const nameSearchSample = `**Figure 1: Samuel Johnson (1709-1784)**
- Writing Style: Balanced, aphoristic prose
- Notable Works: A Dictionary of the English Language
- Match Type: Exact match
- Also Known As: Dr. Johnson`

const refinementSample = `**Figure 1: Jane Austen (1775-1817)**
- Style Preview: Ironic social observation
- Available Content: Six novels and extensive letters
- Better Match Because: Wit without cruelty`

const analysisSample = `**TONE ANALYSIS:**
Ironic, warm beneath the satire.

**VOICE AND PERSPECTIVE:**
Third-person narrator with free indirect discourse.

**FORMALITY LEVEL:**
Formal diction, playful effect.

**TOPICS AND THEMES:**
Marriage, money, social standing.`

const verificationSample = `**Status:** verified
**Reason:** Extensive published novels and surviving letters
**Available Sources:** Six novels, juvenilia, around 160 letters
**Concerns:** None
**Time Period:** Regency England`

const styleGuideSample = `**TONE:** [witty and ironic]
**VOICE:** [third_person]
**FORMALITY:** [very formal]
**LENGTH_PREFERENCE:** [medium]
**PREFERRED_TOPICS:** [courtship, manners, none, family]
**AVOID_TOPICS:** [n/a]
**WRITING_STYLE_NOTES:** [Free indirect discourse, balanced sentences.]`

const examplesSample = `**EXAMPLE 1:**
User prompt: What makes a good marriage?
Assistant response: It is a truth universally acknowledged that happiness in marriage is entirely a matter of chance.

**EXAMPLE 2:**
**User prompt:** Any advice for a young lady entering society?
**Assistant response:** Be sensible, my dear, but never so sensible as to be dull.`

const fallbackExamplesSample = `Prompt: Describe a country ball.
Response: A country ball is the finest theatre in England,
where every glance is a line of dialogue.

Prompt: What do you think of novels?
Response: Only a novel, in which the greatest powers of the mind are displayed.`

var queries = []string{
	"Mark Twain",
	"Sir Walter Scott",
	"famous 19th century American writers",
	"who wrote about the sea",
	"Dickens",
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	p := extract.New(logger)

	section("Search mode detection")
	for _, q := range queries {
		s := extract.ScoreQuery(q)
		fmt.Printf("  %-40q %-12s (name=%d, description=%d)\n", q, extract.DetectMode(q), s.Name, s.Description)
	}

	section("Discovery figures")
	show(p.ParseFigures(discoverySample, extract.DialectDiscovery))

	section("Name search figures")
	show(p.ParseFigures(nameSearchSample, extract.DialectNameSearch))

	section("Refinement figures")
	show(p.ParseFigures(refinementSample, extract.DialectRefinement))

	section("Style analysis")
	show(p.ParseAnalysis("Jane Austen", analysisSample))

	section("Verification")
	show(p.ParseVerification("Jane Austen", verificationSample))

	section("Style guide")
	show(p.ParseStyleGuide(styleGuideSample))

	section("Training examples (sections)")
	show(p.ParseExamples(examplesSample))

	section("Training examples (line fallback)")
	show(p.ParseExamples(fallbackExamplesSample))
}

func section(title string) {
	fmt.Printf("\n=== %s ===\n%s\n", title, strings.Repeat("-", len(title)+8))
}

func show(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("  encode failed: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
