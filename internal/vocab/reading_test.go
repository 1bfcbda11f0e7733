package vocab

import "testing"

func TestKagomeReader(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the IPA dictionary")
	}
	r, err := NewKagomeReader()
	if err != nil {
		t.Fatalf("NewKagomeReader failed: %v", err)
	}

	tests := []struct {
		word, want string
	}{
		{"犬", "いぬ"},
		{"ねこ", "ねこ"},
		{"テスト", "てすと"},
	}
	for _, tt := range tests {
		if got := r.Reading(tt.word); got != tt.want {
			t.Errorf("Reading(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}
