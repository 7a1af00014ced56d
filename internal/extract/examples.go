package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/ppiankov/ghostwriter/internal/model"
)

var (
	exampleHeadingRe = regexp.MustCompile(`(?i)\*\*EXAMPLE \d+:\*\*`)
	userPromptRe     = regexp.MustCompile(`(?is)User prompt:(?:\*\*)?\s*(.*?)\n[ \t]*(?:\*\*)?Assistant response:`)
	assistantRe      = regexp.MustCompile(`(?is)Assistant response:(?:\*\*)?\s*(.*?)(?:\n[ \t]*\*\*EXAMPLE|\z)`)
	bareHeadingRe    = regexp.MustCompile(`^(?:\*\*)?EXAMPLE\b`)
)

// ParseExamples extracts training examples from an example generation
// response. It tries bold "**EXAMPLE n:**" sections first, then a line scan
// for "User prompt:" / "Assistant response:" labels, then a JSON array.
// It never panics; an internal failure yields an empty list.
func (p *Parser) ParseExamples(response string) (examples []model.TrainingExample) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("example parsing failed", "panic", r)
			examples = []model.TrainingExample{}
		}
	}()

	examples = p.parseExampleSections(response)
	if len(examples) > 0 {
		return examples
	}

	p.logger.Debug("no example sections found, trying line scan")
	examples = p.parseExampleLines(response)
	if len(examples) > 0 {
		return examples
	}

	if js := p.parseExampleJSON(response); len(js) > 0 {
		p.logger.Debug("parsed examples from JSON", "count", len(js))
		return js
	}

	p.logger.Warn("could not parse any examples", "response_bytes", len(response))
	return []model.TrainingExample{}
}

func (p *Parser) parseExampleSections(response string) []model.TrainingExample {
	examples := []model.TrainingExample{}

	sections := exampleHeadingRe.Split(response, -1)
	if len(sections) < 2 {
		return examples
	}
	for _, section := range sections[1:] {
		um := userPromptRe.FindStringSubmatch(section)
		am := assistantRe.FindStringSubmatch(section)
		if um == nil || am == nil {
			continue
		}
		p.appendExample(&examples, strings.TrimSpace(um[1]), strings.TrimSpace(am[1]))
	}
	return examples
}

// lineLabel reports whether line starts with one of labels, ignoring
// surrounding bold markup, and returns the text after the colon. Labels are
// case-sensitive so reply lines such as "response: none" stay in the reply.
func lineLabel(line string, labels ...string) (string, bool) {
	trimmed := strings.TrimLeft(line, "*")
	for _, l := range labels {
		if rest, ok := strings.CutPrefix(trimmed, l); ok {
			return strings.TrimSpace(strings.TrimLeft(rest, "*")), true
		}
	}
	return "", false
}

func (p *Parser) parseExampleLines(response string) []model.TrainingExample {
	examples := []model.TrainingExample{}

	var (
		prompt    string
		inExample bool
		reply     []string
	)
	flush := func() {
		if prompt != "" && len(reply) > 0 {
			p.appendExample(&examples, prompt, strings.TrimSpace(strings.Join(reply, "\n")))
		}
	}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)

		if rest, ok := lineLabel(line, "User prompt:", "Prompt:"); ok {
			flush()
			prompt = rest
			inExample = true
			reply = nil
			continue
		}
		if rest, ok := lineLabel(line, "Assistant response:", "Response:"); ok {
			reply = []string{rest}
			continue
		}
		if inExample && line != "" && !bareHeadingRe.MatchString(line) {
			reply = append(reply, line)
		}
	}
	flush()

	return examples
}

// jsonExample accepts either a prompt/response pair or a chat message list
type jsonExample struct {
	Prompt   string          `json:"prompt"`
	Response string          `json:"response"`
	Messages []model.Message `json:"messages"`
}

func (p *Parser) parseExampleJSON(response string) []model.TrainingExample {
	examples := []model.TrainingExample{}

	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start < 0 || end <= start {
		return examples
	}
	raw := response[start : end+1]

	var items []jsonExample
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr != nil {
			p.logger.Debug("JSON repair failed", "error", repairErr)
			return examples
		}
		if err := json.Unmarshal([]byte(repaired), &items); err != nil {
			p.logger.Debug("repaired JSON is not an example list", "error", err)
			return examples
		}
	}

	for _, it := range items {
		if len(it.Messages) > 0 {
			ex, err := model.NewTrainingExample(it.Messages...)
			if err != nil {
				p.logger.Debug("skipping invalid JSON example", "error", err)
				continue
			}
			examples = append(examples, ex)
			continue
		}
		p.appendExample(&examples, strings.TrimSpace(it.Prompt), strings.TrimSpace(it.Response))
	}
	return examples
}

// appendExample adds a system/user/assistant example when both sides are non-empty
func (p *Parser) appendExample(examples *[]model.TrainingExample, prompt, reply string) {
	if prompt == "" || reply == "" {
		return
	}
	ex, err := model.NewConversation(model.DefaultSystemMessage, prompt, reply)
	if err != nil {
		p.logger.Error("built invalid training example", "error", fmt.Errorf("append example: %w", err))
		return
	}
	*examples = append(*examples, ex)
}
