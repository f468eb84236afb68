// Package config handles global configuration loading using viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"firestige.xyz/nubble/internal/core"
)

// EnvPrefix is the environment prefix, e.g. NUBBLE_LOG_LEVEL.
const EnvPrefix = "NUBBLE"

// GlobalConfig represents the top-level configuration.
// Maps to the `nubble:` root key in YAML.
type GlobalConfig struct {
	Capture CaptureConfig `mapstructure:"capture" yaml:"capture"`
	Decoder DecoderConfig `mapstructure:"decoder" yaml:"decoder"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// ─── Capture ───

// CaptureConfig configures the frame source.
type CaptureConfig struct {
	Interface    string        `mapstructure:"interface" yaml:"interface"`
	SnapLen      int           `mapstructure:"snap_len" yaml:"snap_len"`
	BufferSizeMB int           `mapstructure:"buffer_size_mb" yaml:"buffer_size_mb"`
	PollTimeout  time.Duration `mapstructure:"poll_timeout" yaml:"poll_timeout"`
	// ReadFile replays a pcap/pcapng file instead of capturing live.
	ReadFile string `mapstructure:"read_file" yaml:"read_file"`
}

// ─── Decoder ───

// DecoderConfig configures L2-L4 decoding.
type DecoderConfig struct {
	// UnwrapVLAN decodes the frame inside 802.1Q/802.1ad tags. Off, a
	// tagged frame prints as "Other packet". Live capture also asks the
	// kernel to re-insert offloaded tags when this is on.
	UnwrapVLAN bool `mapstructure:"unwrap_vlan" yaml:"unwrap_vlan"`
}

// ─── Log ───

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string           `mapstructure:"level" yaml:"level"`   // trace / debug / info / warn / error
	Format string           `mapstructure:"format" yaml:"format"` // text / json
	File   FileOutputConfig `mapstructure:"file" yaml:"file"`
}

// FileOutputConfig configures file log output.
type FileOutputConfig struct {
	Enabled  bool           `mapstructure:"enabled" yaml:"enabled"`
	Path     string         `mapstructure:"path" yaml:"path"`
	Rotation RotationConfig `mapstructure:"rotation" yaml:"rotation"`
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxAgeDays int  `mapstructure:"max_age_days" yaml:"max_age_days"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
	Compress   bool `mapstructure:"compress" yaml:"compress"`
}

// ─── Loading ───

// configRoot is the top-level wrapper matching the YAML structure `nubble: ...`.
type configRoot struct {
	Nubble GlobalConfig `mapstructure:"nubble" yaml:"nubble"`
}

// Load loads configuration from path. An empty path uses defaults and
// environment variables only.
func Load(path string) (*GlobalConfig, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// The `nubble.` key prefix maps to NUBBLE_ via the key replacer
	// (e.g. "nubble.log.level" -> NUBBLE_LOG_LEVEL).
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&root, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.Nubble

	if err := cfg.ValidateAndApplyDefaults(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration.
// All keys use "nubble." prefix to match the YAML root wrapper.
func setDefaults(v *viper.Viper) {
	// Capture defaults
	v.SetDefault("nubble.capture.interface", "")
	v.SetDefault("nubble.capture.snap_len", 65535)
	v.SetDefault("nubble.capture.buffer_size_mb", 8)
	v.SetDefault("nubble.capture.poll_timeout", "500ms")
	v.SetDefault("nubble.capture.read_file", "")

	// Decoder defaults
	v.SetDefault("nubble.decoder.unwrap_vlan", false)

	// Log defaults
	v.SetDefault("nubble.log.level", "info")
	v.SetDefault("nubble.log.format", "text")
	v.SetDefault("nubble.log.file.enabled", false)
	v.SetDefault("nubble.log.file.path", "/var/log/nubble/nubble.log")
	v.SetDefault("nubble.log.file.rotation.max_size_mb", 100)
	v.SetDefault("nubble.log.file.rotation.max_age_days", 30)
	v.SetDefault("nubble.log.file.rotation.max_backups", 5)
	v.SetDefault("nubble.log.file.rotation.compress", true)
}

// maxSnapLen matches the largest snapshot length tcpdump accepts.
const maxSnapLen = 262144

// ValidateAndApplyDefaults validates configuration and normalizes values.
func (cfg *GlobalConfig) ValidateAndApplyDefaults() error {
	// ── Log validation ──
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("%w: log level %q (must be trace/debug/info/warn/error)", core.ErrConfigInvalid, cfg.Log.Level)
	}
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return fmt.Errorf("%w: log format %q (must be json/text)", core.ErrConfigInvalid, cfg.Log.Format)
	}
	if cfg.Log.File.Enabled && cfg.Log.File.Path == "" {
		return fmt.Errorf("%w: log.file.path is required when log.file.enabled=true", core.ErrConfigInvalid)
	}

	// ── Capture validation ──
	if cfg.Capture.SnapLen <= 0 || cfg.Capture.SnapLen > maxSnapLen {
		return fmt.Errorf("%w: capture.snap_len %d (must be 1..%d)", core.ErrConfigInvalid, cfg.Capture.SnapLen, maxSnapLen)
	}
	if cfg.Capture.BufferSizeMB <= 0 {
		return fmt.Errorf("%w: capture.buffer_size_mb %d (must be positive)", core.ErrConfigInvalid, cfg.Capture.BufferSizeMB)
	}
	if cfg.Capture.PollTimeout <= 0 {
		return fmt.Errorf("%w: capture.poll_timeout %s (must be positive)", core.ErrConfigInvalid, cfg.Capture.PollTimeout)
	}

	return nil
}
