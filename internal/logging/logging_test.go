package logging

import (
	"testing"

	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]string{"debug": "debug", "WARN": "warn", "error": "error", "": "info", "bogus": "info"}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, env := range []string{"", "production"} {
		l, err := New("warn", env)
		if err != nil {
			t.Fatalf("New(%q): %v", env, err)
		}
		if l.Core().Enabled(zap.InfoLevel) {
			t.Fatalf("info should be disabled at warn level (env %q)", env)
		}
	}
}
