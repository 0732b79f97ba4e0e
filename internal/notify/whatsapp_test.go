package notify

import "testing"

func TestNormalizePhoneNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"+972 50-123-4567", "972501234567"},
		{"0501234567", "972501234567"},
		{"12125551234", "12125551234"},
		{"9720501234567", "972501234567"},
		{"(44) 7700-900123", "447700900123"},
	}
	for _, tt := range tests {
		if got := NormalizePhoneNumber(tt.in); got != tt.want {
			t.Errorf("NormalizePhoneNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
