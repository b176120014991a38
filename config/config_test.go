package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Swind/go-concurrency-kit/core"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFactoryConfig_FullProfile(t *testing.T) {
	path := writeConfig(t, `
[factory]
detached = true
stack_size = 65536
priority = "high"
max_threads = 128
`)

	cfg, err := LoadFactoryConfig(path)
	if err != nil {
		t.Fatalf("LoadFactoryConfig failed: %v", err)
	}

	if !cfg.Detached {
		t.Error("detached: got = false, want true")
	}
	if cfg.StackSize != 65536 {
		t.Errorf("stack_size: got = %d, want 65536", cfg.StackSize)
	}
	if cfg.Priority != core.ThreadPriorityHigh {
		t.Errorf("priority: got = %v, want high", cfg.Priority)
	}
	if cfg.MaxThreads != 128 {
		t.Errorf("max_threads: got = %d, want 128", cfg.MaxThreads)
	}
}

func TestLoadFactoryConfig_DefaultsForAbsentKeys(t *testing.T) {
	path := writeConfig(t, `
[factory]
detached = true
`)

	cfg, err := LoadFactoryConfig(path)
	if err != nil {
		t.Fatalf("LoadFactoryConfig failed: %v", err)
	}

	want := DefaultFactoryConfig()
	if !cfg.Detached {
		t.Error("detached: got = false, want true")
	}
	if cfg.StackSize != want.StackSize || cfg.Priority != want.Priority || cfg.MaxThreads != want.MaxThreads {
		t.Errorf("absent keys changed: got = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadFactoryConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown priority":    "[factory]\npriority = \"urgent\"\n",
		"negative stack size": "[factory]\nstack_size = -1\n",
		"negative max":        "[factory]\nmax_threads = -5\n",
		"malformed toml":      "[factory\n",
	}
	for name, body := range cases {
		if _, err := LoadFactoryConfig(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestFactoryConfig_NewFactory(t *testing.T) {
	cfg := FactoryConfig{
		Detached:   true,
		Priority:   core.ThreadPriorityLow,
		MaxThreads: 4,
	}
	factory := cfg.NewFactory()

	thread, err := factory.NewThread(core.RunnableFunc(func() {}))
	if err != nil {
		t.Fatalf("NewThread failed: %v", err)
	}
	if !thread.Detached() {
		t.Error("minted thread should be detached")
	}
	if thread.Priority() != core.ThreadPriorityLow {
		t.Errorf("priority: got = %v, want low", thread.Priority())
	}
}
