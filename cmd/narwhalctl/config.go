package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pkt.systems/narwhal"
	"pkt.systems/pslog"
)

const (
	lockDirKey      = "lockdir"
	spinIntervalKey = "spin_interval"
	timeoutKey      = "timeout"
	logLevelKey     = "log_level"

	envPrefix = "NARWHALCTL"
)

// bindGlobalFlags registers the persistent flags shared by every subcommand
// and binds each to a viper key plus its NARWHALCTL_-prefixed environment
// variable, so a value can come from the flag, the environment, or (if a
// config file is ever introduced) viper's other sources.
func bindGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("lockdir", "", "directory holding the shared lock files (required)")
	flags.Duration("spin-interval", 250*time.Millisecond, "delay between spin-driver retries")
	flags.Duration("timeout", 30*time.Second, "stale-entry and gate-contention timeout")
	flags.String("log-level", "warn", "log level (trace|debug|info|warn|error|none)")

	mustBindFlag(lockDirKey, flags.Lookup("lockdir"))
	mustBindFlag(spinIntervalKey, flags.Lookup("spin-interval"))
	mustBindFlag(timeoutKey, flags.Lookup("timeout"))
	mustBindFlag(logLevelKey, flags.Lookup("log-level"))
}

func mustBindFlag(key string, flag *pflag.Flag) {
	if flag == nil {
		panic(fmt.Sprintf("narwhalctl: flag for key %s not registered", key))
	}
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
	if err := viper.BindEnv(key, envPrefix+"_"+strings.ToUpper(key)); err != nil {
		panic(err)
	}
}

// loadConfig assembles a narwhal.Config from viper-bound flags/environment.
func loadConfig() (narwhal.Config, error) {
	lockDir := strings.TrimSpace(viper.GetString(lockDirKey))
	if lockDir == "" {
		return narwhal.Config{}, fmt.Errorf("--lockdir is required (or set %s_LOCKDIR)", envPrefix)
	}
	logger, err := buildLogger(viper.GetString(logLevelKey))
	if err != nil {
		return narwhal.Config{}, err
	}
	return narwhal.Config{
		LockDir:      lockDir,
		SpinInterval: viper.GetDuration(spinIntervalKey),
		Timeout:      viper.GetDuration(timeoutKey),
		Logger:       logger,
	}, nil
}

func buildLogger(levelStr string) (pslog.Logger, error) {
	levelStr = strings.ToLower(strings.TrimSpace(levelStr))
	if levelStr == "" || levelStr == "none" || levelStr == "disabled" || levelStr == "off" {
		return pslog.NoopLogger(), nil
	}
	level, ok := pslog.ParseLevel(levelStr)
	if !ok {
		return nil, fmt.Errorf("invalid --log-level %q", levelStr)
	}
	return pslog.NewStructured(os.Stderr).LogLevel(level), nil
}
