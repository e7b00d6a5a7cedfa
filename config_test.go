package narwhal

import (
	"testing"
	"time"
)

func TestConfigValidateRequiresLockDir(t *testing.T) {
	cfg := Config{SpinInterval: time.Millisecond, Timeout: time.Second}
	if err := cfg.validate("test"); !IsIOError(err) {
		t.Fatalf("expected IO error for missing LockDir, got %v", err)
	}
}

func TestConfigValidateRequiresPositiveDurations(t *testing.T) {
	base := Config{LockDir: "/tmp/x"}
	if err := base.validate("test"); err == nil {
		t.Fatal("expected error for zero SpinInterval/Timeout")
	}
	base.SpinInterval = time.Millisecond
	if err := base.validate("test"); err == nil {
		t.Fatal("expected error for zero Timeout")
	}
}

func TestConfigWithDefaultsFillsDependencies(t *testing.T) {
	cfg := Config{LockDir: "/tmp/x", SpinInterval: time.Millisecond, Timeout: time.Second}
	got := cfg.withDefaults()
	if got.Logger == nil {
		t.Fatal("expected a non-nil default Logger")
	}
	if got.Clock == nil {
		t.Fatal("expected a non-nil default Clock")
	}
	if got.Metrics == nil {
		t.Fatal("expected a non-nil default Metrics")
	}
}
