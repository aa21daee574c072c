package model

import (
	"encoding/json"
	"errors"
	"testing"

	"golang.org/x/text/language"
)

// mustDate parses a wedding date literal used by the tests.
func mustDate(s string) WeddingDate {
	d, err := ParseWeddingDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// TestParseWeddingDate tests the ParseWeddingDate function
func TestParseWeddingDate(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    string
		description string
	}{
		{
			name:        "Date only",
			input:       "2025-06-01",
			expected:    "2025-06-01",
			description: "YYYY-MM-DD形式を受け付けること",
		},
		{
			name:        "RFC3339",
			input:       "2025-06-01T18:30:00+09:00",
			expected:    "2025-06-01",
			description: "RFC3339形式は日付部分のみを保持すること",
		},
		{
			name:        "Surrounding spaces",
			input:       " 2025-06-01 ",
			expected:    "2025-06-01",
			description: "前後の空白を無視すること",
		},
		{
			name:        "Empty",
			input:       "",
			expectError: true,
			description: "空文字列はエラーになること",
		},
		{
			name:        "Garbage",
			input:       "June 1st",
			expectError: true,
			description: "解釈できない文字列はエラーになること",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseWeddingDate(tt.input)
			if tt.expectError {
				var validationErr *ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("%s: expected ValidationError, got %v", tt.description, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tt.description, err)
			}
			if d.String() != tt.expected {
				t.Errorf("%s: expected %s, got %s", tt.description, tt.expected, d)
			}
		})
	}
}

// TestWeddingDateJSON tests that dates are encoded as plain date strings
func TestWeddingDateJSON(t *testing.T) {
	d := mustDate("2025-12-24")
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != `"2025-12-24"` {
		t.Errorf("Expected \"2025-12-24\", got %s", b)
	}

	var decoded WeddingDate
	if err := json.Unmarshal([]byte(`"not-a-date"`), &decoded); err == nil {
		t.Error("Expected error decoding an invalid date")
	}
}

// TestWeddingDateFormatted tests the display form kept in stored payloads
func TestWeddingDateFormatted(t *testing.T) {
	tests := []struct {
		description string
		date        WeddingDate
		expected    string
	}{
		{description: "single digit day", date: mustDate("2025-06-01"), expected: "June 1, 2025"},
		{description: "timestamp input", date: mustDate("2025-12-24T23:30:00Z"), expected: "December 24, 2025"},
		{description: "zero date", date: WeddingDate{}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := tt.date.Formatted(); got != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.description, tt.expected, got)
			}
		})
	}
}

// TestWeddingDateOrdering tests the Before method
func TestWeddingDateOrdering(t *testing.T) {
	early := mustDate("2025-01-01")
	late := mustDate("2025-01-02")
	if !early.Before(late) || late.Before(early) || early.Before(early) {
		t.Error("Unexpected ordering result")
	}
}

// TestParseTaskKey tests that only the four fixed keys are accepted
func TestParseTaskKey(t *testing.T) {
	for _, key := range []string{"cull", "speeches", "featureFilm", "shortFilm"} {
		if _, err := ParseTaskKey(key); err != nil {
			t.Errorf("Expected %s to be valid, got %v", key, err)
		}
	}

	for _, key := range []string{"", "Cull", "feature_film", "colorGrade"} {
		_, err := ParseTaskKey(key)
		var keyErr *InvalidTaskKeyError
		if !errors.As(err, &keyErr) {
			t.Errorf("Expected InvalidTaskKeyError for %q, got %v", key, err)
		}
	}
}

// TestTaskKeyLabel tests the display labels
func TestTaskKeyLabel(t *testing.T) {
	expected := map[TaskKey]string{
		TaskCull:        "Cull",
		TaskSpeeches:    "Speeches",
		TaskFeatureFilm: "Feature Film",
		TaskShortFilm:   "Short Film",
	}
	for key, label := range expected {
		if got := key.Label(language.English); got != label {
			t.Errorf("Expected label %q for %s, got %q", label, key, got)
		}
	}
}

// TestPercent tests rounding of percentages
func TestPercent(t *testing.T) {
	tests := []struct {
		part, whole, expected int
	}{
		{0, 0, 0},
		{0, 4, 0},
		{1, 4, 25},
		{3, 4, 75},
		{4, 4, 100},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
	}
	for _, tt := range tests {
		if got := Percent(tt.part, tt.whole); got != tt.expected {
			t.Errorf("Percent(%d, %d) = %d, expected %d", tt.part, tt.whole, got, tt.expected)
		}
	}
}
