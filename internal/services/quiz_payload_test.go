package services

import (
	"strings"
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `[{"a":1}]`, `[{"a":1}]`},
		{"json tag", "```json\n[1,2]\n```", "[1,2]"},
		{"no tag", "```\n[1,2]\n```", "[1,2]"},
		{"single line", "```[1,2]```", "[1,2]"},
		{"surrounding whitespace", "  \n```JSON\n[1]\n```  \n", "[1]"},
		{"opening only", "```json\n[1]", "[1]"},
		{"trailing prose", "```json\n[1]\n```\nLet me know if you need more!", "[1]"},
		{"tag word kept in body", "```json\n[\"json\"]\n```", `["json"]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeFences(tc.in); got != tc.want {
				t.Fatalf("stripCodeFences(%q): got=%q want=%q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDecodeQuestionPayloadIgnoresTextAfterFence(t *testing.T) {
	raw := "```json\n" + questionsJSON(t, 2) + "\n```\nLet me know if you need more!"
	drafts, err := decodeQuestionPayload(raw, 2)
	if err != nil {
		t.Fatalf("decodeQuestionPayload: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
}

func TestDecodeQuestionPayloadExactCount(t *testing.T) {
	raw := "```json\n" + questionsJSON(t, 3) + "\n```"
	drafts, err := decodeQuestionPayload(raw, 3)
	if err != nil {
		t.Fatalf("decodeQuestionPayload: %v", err)
	}
	if len(drafts) != 3 {
		t.Fatalf("expected 3 drafts, got %d", len(drafts))
	}
	for i, d := range drafts {
		if len(d.Options) != 4 {
			t.Fatalf("draft %d: expected 4 options, got %d", i, len(d.Options))
		}
		if !strings.Contains("ABCD", d.Correct) || len(d.Correct) != 1 {
			t.Fatalf("draft %d: bad correct label %q", i, d.Correct)
		}
	}
}

func TestDecodeQuestionPayloadTruncatesExtras(t *testing.T) {
	drafts, err := decodeQuestionPayload(questionsJSON(t, 5), 2)
	if err != nil {
		t.Fatalf("decodeQuestionPayload: %v", err)
	}
	if len(drafts) != 2 || drafts[0].Question != "Question 1?" || drafts[1].Question != "Question 2?" {
		t.Fatalf("expected first two drafts, got %+v", drafts)
	}
}

func TestDecodeQuestionPayloadRejects(t *testing.T) {
	cases := map[string]string{
		"not json":      "Sure! Here are your questions.",
		"object":        `{"question":"q","options":{"A":"a","B":"b","C":"c","D":"d"},"correct":"A"}`,
		"empty":         "```json\n```",
		"too few":       questionsJSON(t, 1),
		"bad label":     `[{"question":"q","options":{"A":"a","B":"b","C":"c","D":"d"},"correct":"E"}, {"question":"q","options":{"A":"a","B":"b","C":"c","D":"d"},"correct":"A"}]`,
		"missing D":     `[{"question":"q","options":{"A":"a","B":"b","C":"c"},"correct":"A"}, {"question":"q","options":{"A":"a","B":"b","C":"c","D":"d"},"correct":"A"}]`,
		"extra option":  `[{"question":"q","options":{"A":"a","B":"b","C":"c","D":"d","E":"e"},"correct":"A"}, {"question":"q","options":{"A":"a","B":"b","C":"c","D":"d"},"correct":"A"}]`,
		"blank option":  `[{"question":"q","options":{"A":"a","B":"  ","C":"c","D":"d"},"correct":"A"}, {"question":"q","options":{"A":"a","B":"b","C":"c","D":"d"},"correct":"A"}]`,
		"blank text":    `[{"question":"   ","options":{"A":"a","B":"b","C":"c","D":"d"},"correct":"A"}, {"question":"q","options":{"A":"a","B":"b","C":"c","D":"d"},"correct":"A"}]`,
		"numeric label": `[{"question":"q","options":{"A":"a","B":"b","C":"c","D":"d"},"correct":1}, {"question":"q","options":{"A":"a","B":"b","C":"c","D":"d"},"correct":"A"}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			drafts, err := decodeQuestionPayload(raw, 2)
			if err == nil {
				t.Fatalf("expected error, got %d drafts", len(drafts))
			}
			if drafts != nil {
				t.Fatalf("expected no drafts on failure, got %d", len(drafts))
			}
		})
	}
}
