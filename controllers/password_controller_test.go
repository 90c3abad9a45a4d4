package controllers

import "testing"

func TestGenerateOTP(t *testing.T) {
	otp, err := generateOTP(6)
	if err != nil {
		t.Fatalf("generateOTP: %v", err)
	}
	if len(otp) != 6 {
		t.Fatalf("length = %d, want 6", len(otp))
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit %q in OTP %q", r, otp)
		}
	}
}

func TestGenerateResetToken(t *testing.T) {
	t1, err := generateResetToken()
	if err != nil {
		t.Fatal(err)
	}
	t2, err := generateResetToken()
	if err != nil {
		t.Fatal(err)
	}
	if t1 == t2 {
		t.Error("reset tokens must be unique")
	}
	if len(t1) < 32 {
		t.Errorf("token too short: %d chars", len(t1))
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"jane@example.com", "j***@example.com"},
		{"ab@x.co", "a*@x.co"},
		{"a@x.co", "a@x.co"},
		{"not-an-email", "not-an-email"},
	}

	for _, tt := range tests {
		if got := maskEmail(tt.input); got != tt.want {
			t.Errorf("maskEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
