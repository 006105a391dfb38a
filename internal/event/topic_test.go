package event

import "testing"

func TestTopicIsValid(t *testing.T) {
	tests := []struct {
		topic Topic
		want  bool
	}{
		{"cursor.moved", true},
		{"preview.shown", true},
		{"mode", true},
		{"preview.*", true},
		{"**", true},
		{"", false},
		{".moved", false},
		{"cursor.", false},
		{"cursor..moved", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.topic), func(t *testing.T) {
			if got := tt.topic.IsValid(); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.topic, got, tt.want)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern Topic
		topic   Topic
		want    bool
	}{
		{"exact", "cursor.moved", "cursor.moved", true},
		{"exact mismatch", "cursor.moved", "cursor.selected", false},
		{"single wildcard", "preview.*", "preview.shown", true},
		{"single wildcard too deep", "preview.*", "preview.shown.extra", false},
		{"single wildcard too shallow", "preview.*", "preview", false},
		{"tail wildcard", "preview.**", "preview.shown.extra", true},
		{"tail wildcard single", "preview.**", "preview.shown", true},
		{"bare tail wildcard", "**", "anything.at.all", true},
		{"mid wildcard", "*.moved", "cursor.moved", true},
		{"mid wildcard mismatch", "*.moved", "cursor.shown", false},
		{"pattern longer than topic", "cursor.moved.twice", "cursor.moved", false},
		{"topic longer than pattern", "cursor", "cursor.moved", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.pattern, tt.topic); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.topic, got, tt.want)
			}
		})
	}
}
