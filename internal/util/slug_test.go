package util

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		text string
		max  int
		want string
	}{
		{"Mark Twain", 0, "mark_twain"},
		{"Martin Luther King Jr.", 0, "martin_luther_king_jr"},
		{"  Write a letter -- about   rivers!  ", 0, "write_a_letter_about_rivers"},
		{"Émile Zola", 0, "émile_zola"},
		{"What is the meaning of a good life, really?", 30, "what_is_the_meaning_of_a_good"},
		{"a b c d e f g h i j k l m n o p", 6, "a_b_c"},
		{"?!", 0, ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.text, tt.max); got != tt.want {
			t.Errorf("Slug(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
		}
	}
}
