package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, _, err := New(false)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled by default")
	}

	log, _, err = New(true)
	if err != nil {
		t.Fatalf("New(verbose) failed: %v", err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose should enable debug")
	}
}

func TestLevelRaisedAfterConstruction(t *testing.T) {
	// Config-file verbosity is only known after the logger exists; the
	// returned level must control the already-built logger.
	log, level, err := New(false)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug should start disabled")
	}

	level.SetLevel(zapcore.DebugLevel)
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("raising the level should enable debug on the existing logger")
	}
}

func TestNop(t *testing.T) {
	if Nop() == nil {
		t.Fatal("Nop returned nil")
	}
}
