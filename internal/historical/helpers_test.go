package historical

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/ppiankov/ghostwriter/internal/llm"
	"github.com/ppiankov/ghostwriter/internal/model"
)

// scriptedProvider answers prompts by matching a marker substring
type scriptedProvider struct {
	mu       sync.Mutex
	replies  map[string]string
	err      error
	requests []llm.GenerateRequest
}

func newScriptedProvider(replies map[string]string) *scriptedProvider {
	return &scriptedProvider{replies: replies}
}

func (p *scriptedProvider) Name() string                     { return "scripted" }
func (p *scriptedProvider) IsAvailable(context.Context) bool { return true }

func (p *scriptedProvider) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)

	if p.err != nil {
		return nil, p.err
	}
	for marker, reply := range p.replies {
		if strings.Contains(req.Prompt, marker) {
			return &llm.GenerateResponse{Text: reply, Model: "scripted-1"}, nil
		}
	}
	return nil, errors.New("no scripted reply")
}

func (p *scriptedProvider) calls() []llm.GenerateRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]llm.GenerateRequest(nil), p.requests...)
}

func testGeneration() model.GenerationConfig {
	return model.DefaultConfig().Generation
}

const twainAnalysisResponse = `**TONE ANALYSIS:**
Wry and satirical.

**VOICE AND PERSPECTIVE:**
First person, conversational.

**FORMALITY LEVEL:**
Casual.

**LENGTH AND STRUCTURE:**
Medium-length anecdotes.

**UNIQUE CHARACTERISTICS:**
Deadpan exaggeration.

**TOPICS AND THEMES:**
Hypocrisy, the river, human nature.

**HISTORICAL CONTEXT:**
Post-Civil War America.`

const twainStyleGuideResponse = `**TONE:** [witty]

**VOICE:** [first_person]

**FORMALITY:** [casual]

**LENGTH_PREFERENCE:** [medium]

**PREFERRED_TOPICS:** [human nature, travel, politics]

**AVOID_TOPICS:** [none]

**WRITING_STYLE_NOTES:** [Deadpan humor and vernacular dialogue.]`

const twainExamplesResponse = `**EXAMPLE 1:**
User prompt: What do you think of Congress?
Assistant response: Suppose you were an idiot. And suppose you were a member of Congress. But I repeat myself.

**EXAMPLE 2:**
User prompt: Any advice on telling the truth?
Assistant response: If you tell the truth you don't have to remember anything.`

func twainAnalysis() model.StyleAnalysis {
	return model.StyleAnalysis{
		FigureName:            "Mark Twain",
		ToneAnalysis:          "Wry and satirical.",
		VoicePerspective:      "First person, conversational.",
		FormalityLevel:        "Casual.",
		LengthStructure:       "Medium-length anecdotes.",
		UniqueCharacteristics: "Deadpan exaggeration.",
		TopicsThemes:          "Hypocrisy, the river, human nature.",
		HistoricalContext:     "Post-Civil War America.",
	}
}
