package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"", LevelNormal, false},
		{"INFO", LevelNormal, false},
		{"debug", LevelVerbose, false},
		{" verbose ", LevelVerbose, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelNormal, &buf)

	log.Debug("hidden %d", 1)
	log.Info("shown %d", 2)
	if strings.Contains(buf.String(), "hidden") {
		t.Fatal("debug output at normal level")
	}
	if !strings.Contains(buf.String(), "[INF] ") || !strings.Contains(buf.String(), "shown 2") {
		t.Fatalf("missing info line: %q", buf.String())
	}

	log.SetLevel(LevelVerbose)
	log.Debug("now visible")
	if !strings.Contains(buf.String(), "[DBG] ") {
		t.Fatal("debug output missing at verbose level")
	}

	log.SetLevel(LevelOff)
	buf.Reset()
	log.Error("nothing")
	if buf.Len() != 0 {
		t.Fatalf("output at off level: %q", buf.String())
	}
}

func TestLevelString(t *testing.T) {
	if LevelVerbose.String() != "verbose" {
		t.Fatalf("got %q", LevelVerbose.String())
	}
}
