package zaplog

import (
	"testing"

	"github.com/Swind/go-concurrency-kit/core"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_ForwardsLevelsAndFields(t *testing.T) {
	zapCore, logs := observer.New(zapcore.DebugLevel)
	logger := New(zap.New(zapCore))

	logger.Debug("thread created", core.F("thread_id", uint64(7)))
	logger.Info("info message")
	logger.Warn("thread start rejected", core.F("live", int64(3)))
	logger.Error("runnable panicked")

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("entries: got = %d, want 4", len(entries))
	}

	if entries[0].Level != zapcore.DebugLevel || entries[0].Message != "thread created" {
		t.Fatalf("first entry = %v %q", entries[0].Level, entries[0].Message)
	}
	fields := entries[0].ContextMap()
	if got, ok := fields["thread_id"]; !ok || got != uint64(7) {
		t.Fatalf("thread_id field: got = %v, want 7", got)
	}

	if entries[2].Level != zapcore.WarnLevel {
		t.Fatalf("third entry level = %v, want warn", entries[2].Level)
	}
	if entries[3].Level != zapcore.ErrorLevel {
		t.Fatalf("fourth entry level = %v, want error", entries[3].Level)
	}
}

func TestNew_NilBase(t *testing.T) {
	logger := New(nil)
	// Must not panic; output goes nowhere.
	logger.Info("dropped")
}

func TestLogger_SatisfiesFactoryHook(t *testing.T) {
	zapCore, logs := observer.New(zapcore.DebugLevel)

	factory := core.NewThreadFactory()
	factory.SetLogger(New(zap.New(zapCore)))

	thread, err := factory.NewThread(core.RunnableFunc(func() {}))
	if err != nil {
		t.Fatalf("NewThread failed: %v", err)
	}
	if err := thread.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := thread.Join(); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	if logs.FilterMessage("thread created").Len() != 1 {
		t.Fatal("expected a 'thread created' entry")
	}
}
