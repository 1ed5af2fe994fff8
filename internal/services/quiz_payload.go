package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/yungbote/quizmind-backend/internal/domain/quiz"
)

// QuestionDraft is one validated generated question, not yet persisted.
type QuestionDraft struct {
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
	Correct  string            `json:"correct"`
}

const questionItemSchema = `{
  "type": "object",
  "required": ["question", "options", "correct"],
  "properties": {
    "question": {"type": "string", "minLength": 1},
    "options": {
      "type": "object",
      "required": ["A", "B", "C", "D"],
      "additionalProperties": false,
      "properties": {
        "A": {"type": "string", "minLength": 1},
        "B": {"type": "string", "minLength": 1},
        "C": {"type": "string", "minLength": 1},
        "D": {"type": "string", "minLength": 1}
      }
    },
    "correct": {"type": "string", "enum": ["A", "B", "C", "D"]}
  }
}`

var questionSchema = mustCompileSchema(questionItemSchema)

func mustCompileSchema(raw string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("compile question schema: %v", err))
	}
	return s
}

// stripCodeFences returns the body of a leading ``` block (language tag
// dropped), ignoring anything after its closing fence. Unfenced input only
// loses a stray trailing ```.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	s = strings.TrimPrefix(s, "```")
	if end := strings.Index(s, "```"); end >= 0 {
		s = s[:end]
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		if tag := strings.TrimSpace(s[:nl]); !strings.ContainsAny(tag, "[{") {
			s = s[nl+1:]
		}
	} else {
		s = strings.TrimLeftFunc(s, func(r rune) bool { return r != '[' && r != '{' })
	}
	return strings.TrimSpace(s)
}

// decodeQuestionPayload turns model output into exactly count drafts.
// Items failing the schema are dropped; fewer than count survivors is an error.
func decodeQuestionPayload(raw string, count int) ([]QuestionDraft, error) {
	body := stripCodeFences(raw)
	if body == "" {
		return nil, fmt.Errorf("empty payload")
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return nil, fmt.Errorf("payload is not a JSON array: %w", err)
	}

	drafts := make([]QuestionDraft, 0, len(items))
	var rejected []string
	for i, item := range items {
		result, err := questionSchema.Validate(gojsonschema.NewBytesLoader(item))
		if err != nil {
			rejected = append(rejected, fmt.Sprintf("item %d: %v", i, err))
			continue
		}
		if !result.Valid() {
			msgs := make([]string, 0, len(result.Errors()))
			for _, e := range result.Errors() {
				msgs = append(msgs, e.String())
			}
			rejected = append(rejected, fmt.Sprintf("item %d: %s", i, strings.Join(msgs, "; ")))
			continue
		}
		var d QuestionDraft
		if err := json.Unmarshal(item, &d); err != nil {
			rejected = append(rejected, fmt.Sprintf("item %d: %v", i, err))
			continue
		}
		if !d.normalize() {
			rejected = append(rejected, fmt.Sprintf("item %d: blank question or option", i))
			continue
		}
		drafts = append(drafts, d)
	}

	if len(drafts) < count {
		if len(rejected) > 0 {
			return nil, fmt.Errorf("got %d valid questions, want %d: %s", len(drafts), count, strings.Join(rejected, " | "))
		}
		return nil, fmt.Errorf("got %d valid questions, want %d", len(drafts), count)
	}
	return drafts[:count], nil
}

func (d *QuestionDraft) normalize() bool {
	d.Question = strings.TrimSpace(d.Question)
	if d.Question == "" || !quiz.IsValidLabel(d.Correct) {
		return false
	}
	for _, label := range quiz.OptionLabels {
		text := strings.TrimSpace(d.Options[label])
		if text == "" {
			return false
		}
		d.Options[label] = text
	}
	return true
}
