package grade

import "testing"

func TestPoints(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  float64
	}{
		{name: "empty", token: "", want: 0},
		{name: "blank", token: "   ", want: 0},
		// numeric thresholds
		{name: "90 -> 4.0", token: "90", want: 4},
		{name: "just below 90", token: "89.999", want: 3},
		{name: "80 -> 3.0", token: "80", want: 3},
		{name: "70 -> 2.0", token: "70", want: 2},
		{name: "60 -> 1.0", token: "60", want: 1},
		{name: "just below 60", token: "59.9", want: 0},
		{name: "zero", token: "0", want: 0},
		{name: "decimal score", token: "87.5", want: 3},
		{name: "above 100 still caps at 4", token: "150", want: 4},
		// letters
		{name: "A", token: "A", want: 4},
		{name: "lowercase b", token: "b", want: 3},
		{name: "padded letter", token: " a ", want: 4},
		{name: "C", token: "C", want: 2},
		{name: "D", token: "D", want: 1},
		{name: "F", token: "F", want: 0},
		// junk
		{name: "unknown letter", token: "Z", want: 0},
		{name: "gibberish", token: "lol", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Points(tt.token); got != tt.want {
				t.Errorf("Points(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestEntryKey(t *testing.T) {
	e := Entry{CourseID: "c1", StudentID: "s1", Value: "A"}
	if e.Key() != (Key{CourseID: "c1", StudentID: "s1"}) {
		t.Errorf("Key() = %+v", e.Key())
	}
}
