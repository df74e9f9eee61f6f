package dataset

import (
	"strings"
	"unicode"

	"sphasecli/pkg/contracts/domain"
)

// Reshape unpivots the two method columns into long form: every Submission
// becomes exactly two Observations, one per method, carrying timestamp and
// group unchanged. No rows are dropped here; values stay text (whitespace
// stripped) until the cleaner coerces them.
func Reshape(submissions []domain.Submission) []domain.Observation {
	observations := make([]domain.Observation, 0, 2*len(submissions))
	for _, sub := range submissions {
		observations = append(observations,
			domain.Observation{
				Timestamp: sub.Timestamp,
				Group:     sub.Group,
				Method:    domain.MethodManual,
				RawValue:  stripWhitespace(sub.Manual),
			},
			domain.Observation{
				Timestamp: sub.Timestamp,
				Group:     sub.Group,
				Method:    domain.MethodAutomated,
				RawValue:  stripWhitespace(sub.Automated),
			},
		)
	}
	return observations
}

// stripWhitespace removes every whitespace rune from the value token, so
// " 45 " coerces cleanly while "45 %" becomes "45%" and still fails
// coercion downstream.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
