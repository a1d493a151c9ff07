package fallback

import (
	"math/rand"

	"github.com/mohamedfarez/ai-twin/backend/internal/analysis/intent"
	"github.com/mohamedfarez/ai-twin/backend/internal/model/persona"
)

const defaultConcernReply = "I understand your concern. Let me address that for you - what would help most is understanding your specific situation a bit better. Could you tell me more?"

// Responder is the non-LLM last resort: it picks a templated reply from the
// persona's pools by objection or intent, falling back to a stage-appropriate
// generic line. It never fails and never returns empty text.
type Responder struct {
	persona persona.Persona
}

// New binds a responder to one persona's template pools.
func New(p persona.Persona) *Responder {
	return &Responder{persona: p}
}

// Reply produces usable text for any analysis result.
func (r *Responder) Reply(res intent.Result, stage int, firstInteraction bool) string {
	// Concerns take priority over intent, matching the conversational flow
	// of addressing objections before pitching.
	if len(res.Objections) > 0 {
		if pool := r.persona.ConcernResponses[res.Objections[0]]; len(pool) > 0 {
			return pick(pool)
		}
		return defaultConcernReply
	}

	if pool := r.persona.IntentReplies[res.Intent]; len(pool) > 0 {
		return pick(pool)
	}

	switch res.Intent {
	case intent.ExperienceInquiry:
		return pick(r.persona.Achievements) + " I have 1.5+ years of hands-on experience and have worked with companies like Hive Tech, Esaal, and CODSOFT. What specific area of my experience would you like to know more about?"
	case intent.CollaborationRequest:
		return pick(r.persona.CollaborationInvites) + " " + r.persona.ContactLine + " What's the best way to continue our technical discussion?"
	case intent.TechnicalInquiry:
		return pick(r.persona.ExpertiseShowcase) + " What specific technical aspect would you like me to elaborate on?"
	}

	switch {
	case firstInteraction:
		return pick(r.persona.Greetings)
	case stage <= 2:
		return "That's an interesting point! What specific technical challenges are you facing in your current setup?"
	case stage <= 4:
		return pick(r.persona.ExpertiseShowcase)
	default:
		return pick(r.persona.CollaborationInvites)
	}
}

func pick(pool []string) string {
	if len(pool) == 0 {
		return defaultConcernReply
	}
	return pool[rand.Intn(len(pool))]
}
