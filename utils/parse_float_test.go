package utils

import "testing"

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"integer", "3000", 3000, false},
		{"decimal", "2500.75", 2500.75, false},
		{"empty defaults to zero", "", 0, false},
		{"not a number", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFloat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFloat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
	}{
		{"json number", float64(1200.5), 1200.5},
		{"go int", 300, 300},
		{"numeric string", "450.25", 450.25},
		{"non-numeric string", "n/a", 0},
		{"nil", nil, 0},
		{"unexpected type", []string{"x"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceFloat(tt.input); got != tt.want {
				t.Errorf("CoerceFloat(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
