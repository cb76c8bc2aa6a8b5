package util

import "testing"

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"10MB", 10 << 20},
		{"512kb", 512 << 10},
		{"1GB", 1 << 30},
		{" 25 MB ", 25 << 20},
		{"100B", 100},
		{"2048", 2048},
		{"", 7},
		{"lots", 7},
		{"-5MB", 7},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseSize(tc.in, 7); got != tc.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := map[int64]string{
		25 << 20: "25MB",
		1 << 30:  "1GB",
		1536:     "1536B",
		0:        "0B",
		10:       "10B",
	}
	for n, want := range tests {
		if got := FormatSize(n); got != want {
			t.Errorf("FormatSize(%d) = %q, want %q", n, got, want)
		}
		if want != "0B" && ParseSize(want, -1) != n {
			t.Errorf("ParseSize(FormatSize(%d)) does not round trip", n)
		}
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sk-proj-abcdef123456", "sk-p***"},
		{"short", "***"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := MaskSecret(tc.in, 4); got != tc.want {
			t.Errorf("MaskSecret(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "flag", "config"); got != "flag" {
		t.Errorf("Coalesce = %q", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("Coalesce = %d", got)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  visit\x00\n.wav\t "); got != "visit.wav" {
		t.Errorf("SanitizeString = %q", got)
	}
}
