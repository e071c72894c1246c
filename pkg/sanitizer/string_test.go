package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Annual Tech Conference  ",
			want:  "Annual Tech Conference",
		},
		{
			name:  "multiple spaces between words",
			input: "Annual    Tech   Conference",
			want:  "Annual Tech Conference",
		},
		{
			name:  "tabs and newlines",
			input: "Annual\t\nConference",
			want:  "Annual Conference",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Café & Recital™ ",
			want:  "Café & Recital™",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  User@Example.COM "); got != "user@example.com" {
		t.Errorf("NormalizeEmail = %q, want user@example.com", got)
	}
}

func TestNormalizeFeatures(t *testing.T) {
	got := NormalizeFeatures([]string{" Stage ", "Sound  System", "", "Stage"})
	want := []string{"Stage", "Sound System"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestNormalizeStringSlice_Idempotent(t *testing.T) {
	input := []string{" a ", "b", " a "}
	once := NormalizeStringSlice(input, TrimAndNormalize)
	twice := NormalizeStringSlice(once, TrimAndNormalize)
	if len(once) != len(twice) {
		t.Fatalf("not idempotent: %v vs %v", once, twice)
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("not idempotent: %v vs %v", once, twice)
		}
	}
}
