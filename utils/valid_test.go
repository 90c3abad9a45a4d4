package utils

import (
	"mime/multipart"
	"testing"
)

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain address", "jane@example.com", "jane@example.com", false},
		{"uppercase and spaces", "  Jane@Example.COM  ", "jane@example.com", false},
		{"plus addressing", "jane+hr@example.com", "jane+hr@example.com", false},
		{"missing at", "janeexample.com", "", true},
		{"missing tld", "jane@example", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeEmail(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "John Doe", "John Doe"},
		{"trims whitespace", "  John  ", "John"},
		{"escapes html", "<script>x</script>", "&lt;script&gt;x&lt;/script&gt;"},
		{"strips control characters", "John\x00Doe", "JohnDoe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeInput(tt.input); got != tt.want {
				t.Errorf("SanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidImageFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"avatar.png", true},
		{"anim.gif", true},
		{"modern.webp", true},
		{"script.php", false},
		{"archive.zip", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			fh := &multipart.FileHeader{Filename: tt.filename}
			if got := IsValidImageFile(fh); got != tt.want {
				t.Errorf("IsValidImageFile(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}
