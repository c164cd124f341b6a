package logging

import "testing"

func TestNewLogger_Levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "INFO", "bogus"} {
		l := NewLogger(level)
		if l == nil {
			t.Fatalf("NewLogger(%q) returned nil", level)
		}
		l.Debug("debug %d", 1)
		l.Info("info %d", 2)
		l.Warn("warn %d", 3)
		l.Error("error %d", 4)
		l.Sync()
	}
}
