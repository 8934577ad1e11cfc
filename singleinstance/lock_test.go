package singleinstance

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Alice", "alice"},
		{`DOMAIN\bob.smith`, "domain_bob_smith"},
		{"", "unknown"},
		{"x-y_z9", "x-y_z9"},
	}
	for _, tt := range tests {
		if got := sanitize(tt.in); got != tt.want {
			t.Errorf("sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNilLockRelease(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Fatalf("nil Release: %v", err)
	}
}
