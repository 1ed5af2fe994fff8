package quiz

import "testing"

func TestQuestionOptionsRoundTrip(t *testing.T) {
	in := map[string]string{"A": "x", "B": "y", "C": "z", "D": "w"}
	var q Question
	q.SetOptions(in)
	out := q.Options()
	for _, label := range OptionLabels {
		if out[label] != in[label] {
			t.Fatalf("option %s: got=%q want=%q", label, out[label], in[label])
		}
	}
}

func TestIsValidLabel(t *testing.T) {
	for _, label := range OptionLabels {
		if !IsValidLabel(label) {
			t.Fatalf("expected %q to be valid", label)
		}
	}
	for _, label := range []string{"", "a", "E", "AB"} {
		if IsValidLabel(label) {
			t.Fatalf("expected %q to be invalid", label)
		}
	}
}
