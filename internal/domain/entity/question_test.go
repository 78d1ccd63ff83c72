package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestion_IsCorrect(t *testing.T) {
	question := &Question{
		QuestionStatement: "2 + 2 = ?",
		Option1:           "3",
		Option2:           "4",
		Option3:           "5",
		Option4:           "22",
		CorrectOption:     2,
	}

	assert.True(t, question.IsCorrect(2), "Вариант 2 должен быть правильным")
	assert.False(t, question.IsCorrect(1), "Вариант 1 не должен быть правильным")
	assert.False(t, question.IsCorrect(0), "Вариант 0 (ответ не выбран) не должен быть правильным")
	assert.False(t, question.IsCorrect(5), "Вариант вне диапазона не должен быть правильным")
}

func TestQuestion_Options(t *testing.T) {
	question := &Question{
		Option1: "a",
		Option2: "b",
		Option3: "c",
		Option4: "d",
	}

	assert.Equal(t, []string{"a", "b", "c", "d"}, question.Options(), "Options должен возвращать варианты в порядке нумерации")
}

func TestIsValidCorrectOption(t *testing.T) {
	// Допустимы только значения 1-4
	for option := 1; option <= 4; option++ {
		assert.True(t, IsValidCorrectOption(option), "Вариант %d должен быть допустимым", option)
	}
	assert.False(t, IsValidCorrectOption(0), "Вариант 0 не должен быть допустимым")
	assert.False(t, IsValidCorrectOption(5), "Вариант 5 не должен быть допустимым")
	assert.False(t, IsValidCorrectOption(-1), "Отрицательный вариант не должен быть допустимым")
}

func TestQuestion_TableName(t *testing.T) {
	assert.Equal(t, "questions", Question{}.TableName())
}
