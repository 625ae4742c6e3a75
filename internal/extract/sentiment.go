package extract

import "strings"

// Sentiment is the overall tone of an interaction.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Keyword groups in priority order: positive evidence dominates negative
// evidence when both appear in the same utterance.
var (
	positiveWords = []string{"positive", "enthusiastic", "interested", "happy"}
	negativeWords = []string{"negative", "concerned", "skeptical"}
)

// Classify returns the sentiment of the text by keyword containment on a
// lower-cased copy. Neutral is the default when neither group matches.
func Classify(text string) Sentiment {
	lower := strings.ToLower(text)
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			return SentimentPositive
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			return SentimentNegative
		}
	}
	return SentimentNeutral
}
