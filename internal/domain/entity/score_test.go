package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Percentage(t *testing.T) {
	testCases := []struct {
		name           string
		totalScored    int
		totalQuestions int
		expected       int
	}{
		{"3 из 5", 3, 5, 60},
		{"все правильные", 5, 5, 100},
		{"ни одного правильного", 0, 5, 0},
		{"округление вверх", 2, 3, 67},
		{"округление вниз", 1, 3, 33},
		{"ноль вопросов не приводит к делению на ноль", 0, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score := &Score{TotalScored: tc.totalScored, TotalQuestions: tc.totalQuestions}
			assert.Equal(t, tc.expected, score.Percentage())
		})
	}
}

func TestScore_TableName(t *testing.T) {
	assert.Equal(t, "scores", Score{}.TableName())
}
