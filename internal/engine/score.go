package engine

import "github.com/mohamedfarez/ai-twin/backend/internal/analysis/intent"

// UpdateScore folds one analysis result into the previous engagement score.
// Sentiment contributes +10/-5/0 and the matched intent rule's bonus is
// additive on top; the result saturates at the [0, 100] bounds.
func UpdateScore(prev int, res intent.Result) int {
	score := prev

	switch res.Sentiment {
	case intent.Positive:
		score += 10
	case intent.Negative:
		score -= 5
	}

	score += res.Bonus

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
