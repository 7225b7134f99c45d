package engine

import "math/rand"

// Success messages are randomized per exercise so repeated wins don't
// read identically; miss messages are fixed coaching cues.
var hitMessages = map[string][]string{
	"turtle": {
		"Great! You spoke slowly and fluently.",
		"Awesome slow speech!",
	},
	"snake": {
		"Smooth prolongation! The snake loved that.",
		"Excellent sustained sound!",
	},
	"balloon": {
		"Perfect easy onset!",
		"Great gentle start!",
	},
	"onetap": {
		"Fluent one-tap! Nailed it.",
		"Awesome! No bumps!",
	},
}

var missMessages = map[string]string{
	"turtle":  "Try to keep it smooth and steady!",
	"snake":   "Try to make it one smooth sound.",
	"balloon": "Remember: gentle breath, then soft start.",
	"onetap":  "Almost! Try to make it smoother.",
}

// feedbackFor picks the user-facing message for an exercise outcome
func feedbackFor(exercise string, hit bool) string {
	if hit {
		msgs, ok := hitMessages[exercise]
		if !ok || len(msgs) == 0 {
			return "Great job!"
		}
		return msgs[rand.Intn(len(msgs))]
	}
	if msg, ok := missMessages[exercise]; ok {
		return msg
	}
	return "Give it another try!"
}
