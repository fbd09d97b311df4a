package version

import (
	"testing"
	"time"
)

func TestInfoString(t *testing.T) {
	at := time.Date(2024, 4, 15, 9, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"go run", Info{}, "dev"},
		{"tag only", Info{Tag: "v0.3.0"}, "v0.3.0"},
		{"vcs build", Info{Tag: "v0.3.0", Revision: "0123456789abcdef", Time: at}, "v0.3.0 0123456 at 2024-04-15 09:30:00"},
		{"dirty untagged", Info{Revision: "abc", Dirty: true}, "abc dirty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
