package extract

import "testing"

func TestDetectMode(t *testing.T) {
	tests := []struct {
		query string
		want  Mode
	}{
		{"Mark Twain", ModeName},
		{"famous American authors", ModeDescription},
		{"Hemingway style", ModeDescription},
		{"Sir Walter Scott", ModeName},
		{"Leonardo da Vinci", ModeName},
		{"victorian poets", ModeDescription},
		{"who wrote about whales", ModeDescription},
		{"writers of the Harlem Renaissance who wrote poetry", ModeDescription},
		{"", ModeDescription},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := DetectMode(tt.query); got != tt.want {
				t.Errorf("DetectMode(%q) = %q, want %q (signals %+v)", tt.query, got, tt.want, ScoreQuery(tt.query))
			}
		})
	}
}

func TestScoreQuery(t *testing.T) {
	s := ScoreQuery("Dr. Samuel Johnson")
	// capitalized words, short query, title
	if s.Name != 3 {
		t.Errorf("Expected 3 name signals, got %d", s.Name)
	}
	if s.Description != 0 {
		t.Errorf("Expected 0 description signals, got %d", s.Description)
	}

	s = ScoreQuery("influential 19th century British essayists")
	// adjective, era word, word count
	if s.Description != 3 {
		t.Errorf("Expected 3 description signals, got %d", s.Description)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeAuto, "AUTO": ModeAuto, "name": ModeName, "description": ModeDescription} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = (%q, %v), want %q", in, got, err, want)
		}
	}
	if _, err := ParseMode("fuzzy"); err == nil {
		t.Error("Expected error for unknown mode")
	}
}
