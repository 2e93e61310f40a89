package scene

import (
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SCENE_DEBUG", "true")
	t.Setenv("SCENE_MAX_TREE_DEPTH", "64")
	t.Setenv("SCENE_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Debug {
		t.Error("Debug not loaded")
	}
	if cfg.MaxTreeDepth != 64 {
		t.Errorf("MaxTreeDepth = %d, want 64", cfg.MaxTreeDepth)
	}
	if cfg.MaxChildCount != DefaultMaxChildCount {
		t.Errorf("MaxChildCount = %d, want default %d", cfg.MaxChildCount, DefaultMaxChildCount)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadConfigRejectsBadLevel(t *testing.T) {
	t.Setenv("SCENE_LOG_LEVEL", "loud")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestWithConfigAppliesDefaults(t *testing.T) {
	_, tracker := newScene(t, WithConfig(Config{Debug: true}))
	cfg := tracker.Config()
	if cfg.MaxTreeDepth != DefaultMaxTreeDepth || cfg.MaxChildCount != DefaultMaxChildCount {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if !cfg.Debug {
		t.Error("Debug dropped")
	}
}
