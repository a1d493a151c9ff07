package prompt

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/mohamedfarez/ai-twin/backend/internal/analysis/intent"
	"github.com/mohamedfarez/ai-twin/backend/internal/model/chat"
	"github.com/mohamedfarez/ai-twin/backend/internal/model/persona"
)

const historyLimit = 10

var stageNames = map[int]string{
	1: "introduction",
	2: "technical discussion",
	3: "solution showcase",
	4: "results showcase",
	5: "collaboration",
}

// Composer assembles the provider-agnostic message list: persona document,
// stage coaching, intent guidance, a compact state summary, then recent
// history and the new user message in chronological order.
type Composer struct {
	persona persona.Persona
}

// NewComposer binds a composer to one persona document.
func NewComposer(p persona.Persona) *Composer {
	return &Composer{persona: p}
}

// Input is the live session state the composer folds into the prompt.
// History must not include the message being answered.
type Input struct {
	Stage       int
	Score       int
	Interests   []string
	History     []chat.Message
	Analysis    intent.Result
	UserMessage string
}

// Compose builds the normalized request message list.
func (c *Composer) Compose(in Input) []*schema.Message {
	msgs := make([]*schema.Message, 0, historyLimit+2)
	msgs = append(msgs, schema.SystemMessage(c.systemPrompt(in)))

	history := in.History
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	for _, m := range history {
		switch m.Role {
		case chat.RoleUser:
			msgs = append(msgs, schema.UserMessage(m.Content))
		case chat.RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(m.Content, nil))
		}
	}

	return append(msgs, schema.UserMessage(in.UserMessage))
}

func (c *Composer) systemPrompt(in Input) string {
	var b strings.Builder
	b.WriteString(c.persona.SystemPrompt)

	b.WriteString("\n\n")
	b.WriteString(stageClause(in))

	if guidance, ok := c.persona.IntentGuidance[in.Analysis.Intent]; ok {
		b.WriteString("\n")
		b.WriteString(guidance)
	}

	stageName := stageNames[in.Stage]
	fmt.Fprintf(&b, "\n\nConversation state: stage %d (%s), engagement score %d/100.", in.Stage, stageName, in.Score)
	if len(in.Interests) > 0 {
		fmt.Fprintf(&b, " Detected interests so far: %s.", strings.Join(dedupe(in.Interests), ", "))
	}

	return b.String()
}

func stageClause(in Input) string {
	switch {
	case !hasAssistantTurn(in.History):
		return "This is the visitor's first interaction. Introduce yourself warmly, establish credibility, and invite them to share what brought them here."
	case in.Stage <= 2:
		return "The conversation is still early. Focus on understanding the visitor's technical challenges and goals before showcasing solutions."
	default:
		return "The conversation is ongoing. Build on what the visitor has already shared, showcase relevant results, and move toward concrete next steps."
	}
}

func hasAssistantTurn(history []chat.Message) bool {
	for _, m := range history {
		if m.Role == chat.RoleAssistant {
			return true
		}
	}
	return false
}

// dedupe keeps the summary readable; the profile itself preserves duplicates.
func dedupe(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
