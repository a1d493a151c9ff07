package intent

import "strings"

// Sentiment buckets for visitor messages.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
)

// Intents shared by every persona configuration. Persona-specific topical
// intents (football_chat and friends) live in the persona seeds.
const (
	GeneralInquiry       = "general_inquiry"
	BudgetInquiry        = "budget_inquiry"
	DemoRequest          = "demo_request"
	ExperienceInquiry    = "experience_inquiry"
	CollaborationRequest = "collaboration_request"
	TechnicalInquiry     = "technical_inquiry"
)

// Rule maps an intent to the keywords that trigger it. Rules are evaluated
// in order and the first match wins, so more specific topics must come
// before generic professional ones.
type Rule struct {
	Intent   string
	Keywords []string
	Bonus    int // engagement bonus granted when this rule matches
}

// ObjectionRule matches one concern category independently of the others.
type ObjectionRule struct {
	Category string
	Patterns []string
}

// Config parameterizes the analyzer for one persona.
type Config struct {
	Rules      []Rule
	Positive   []string
	Negative   []string
	Vocabulary []string
	Objections []ObjectionRule
}

// Result is the transient classification of a single message.
type Result struct {
	Intent     string
	Sentiment  Sentiment
	Keywords   []string
	Objections []string
	Bonus      int
}

// Analyzer performs deterministic, keyword-based message classification.
// It is stateless and safe for concurrent use.
type Analyzer struct {
	cfg Config
}

// New builds an analyzer from a persona's classification tables.
func New(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze classifies a raw user message.
func (a *Analyzer) Analyze(text string) Result {
	lower := strings.ToLower(text)

	res := Result{Intent: GeneralInquiry, Sentiment: Neutral}

	for _, rule := range a.cfg.Rules {
		if containsAny(lower, rule.Keywords) {
			res.Intent = rule.Intent
			res.Bonus = rule.Bonus
			break
		}
	}

	// Positive wins when both lists match.
	if containsAny(lower, a.cfg.Positive) {
		res.Sentiment = Positive
	} else if containsAny(lower, a.cfg.Negative) {
		res.Sentiment = Negative
	}

	for _, term := range a.cfg.Vocabulary {
		if strings.Contains(lower, term) {
			res.Keywords = append(res.Keywords, term)
		}
	}

	for _, obj := range a.cfg.Objections {
		if containsAny(lower, obj.Patterns) {
			res.Objections = append(res.Objections, obj.Category)
		}
	}

	return res
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
