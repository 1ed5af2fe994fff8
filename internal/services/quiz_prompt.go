package services

import "fmt"

const (
	quizSystemInstruction = "Return only raw JSON. No explanations, markdown, or text outside JSON."
	quizTemperature       = 0.9
	maxVariation          = 9999
)

func buildQuizPrompt(topic string, count int, difficulty string, variation int) string {
	return fmt.Sprintf(`You are a creative quiz generator.
Generate %d unique, creative, non-repetitive %s-level multiple-choice questions
about %s. Each question should be distinct from typical textbook ones.
Use randomness factor %d to diversify results.

Each question must have 4 options (A, B, C, D).
Return output strictly in **valid JSON** like this:
[
    {
        "question": "Question text",
        "options": {
            "A": "Option A text",
            "B": "Option B text",
            "C": "Option C text",
            "D": "Option D text"
        },
        "correct": "A"
    }
]`, count, difficulty, topic, variation)
}
