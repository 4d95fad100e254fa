package config

import (
	"fmt"
	"strings"

	"github.com/go-arcade/phrasetrie/pkg/log"
	"github.com/go-arcade/phrasetrie/pkg/metrics"
	"github.com/go-arcade/phrasetrie/pkg/storage"
	"github.com/go-arcade/phrasetrie/pkg/trace"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PHRASETRIE_RENDER_COUNTS.
const EnvPrefix = "PHRASETRIE"

// AppConfig holds all configuration settings
type AppConfig struct {
	Input     InputConfig           `mapstructure:"input"`
	Tokenizer TokenizerConfig       `mapstructure:"tokenizer"`
	Render    RenderConfig          `mapstructure:"render"`
	Log       log.Conf              `mapstructure:"log"`
	Storage   storage.Storage       `mapstructure:"storage"`
	Metrics   metrics.MetricsConfig `mapstructure:"metrics"`
	Trace     trace.TraceConfig     `mapstructure:"trace"`
}

// InputConfig lists the objects to ingest, in order.
type InputConfig struct {
	Files []string `mapstructure:"files"`
}

// TokenizerConfig toggles text normalization before insertion
type TokenizerConfig struct {
	Normalize bool `mapstructure:"normalize"` // Unicode NFC
	FoldCase  bool `mapstructure:"foldCase"`
}

// RenderConfig controls the tree output
type RenderConfig struct {
	Counts   bool   `mapstructure:"counts"`
	MaxDepth int    `mapstructure:"maxDepth"` // 0 means unlimited
	MinCount uint64 `mapstructure:"minCount"`
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"file":      "input.files",
	"counts":    "render.counts",
	"depth":     "render.maxDepth",
	"min-count": "render.minCount",
	"normalize": "tokenizer.normalize",
	"fold-case": "tokenizer.foldCase",
	"log-level": "log.level",
}

// Load reads configuration from, in increasing precedence: built-in
// defaults, the TOML file at confFile (optional), PHRASETRIE_* environment
// variables and the flags that were set on the command line.
func Load(confFile string, flags *pflag.FlagSet) (AppConfig, error) {
	var cfg AppConfig

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if confFile != "" {
		v.SetConfigFile(confFile)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("failed to read configuration file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return cfg, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	lc := log.SetDefaults()
	v.SetDefault("input.files", []string{})
	v.SetDefault("tokenizer.normalize", false)
	v.SetDefault("tokenizer.foldCase", false)
	v.SetDefault("render.counts", false)
	v.SetDefault("render.maxDepth", 0)
	v.SetDefault("render.minCount", 0)

	v.SetDefault("log.output", lc.Output)
	v.SetDefault("log.path", lc.Path)
	v.SetDefault("log.filename", lc.Filename)
	v.SetDefault("log.level", lc.Level)
	v.SetDefault("log.keepHours", lc.KeepHours)
	v.SetDefault("log.rotateSize", lc.RotateSize)
	v.SetDefault("log.rotateNum", lc.RotateNum)

	v.SetDefault("storage.provider", storage.StorageLocal)
	v.SetDefault("storage.basePath", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.accessKey", "")
	v.SetDefault("storage.secretKey", "")
	v.SetDefault("storage.useTLS", false)
	v.SetDefault("storage.timeout", "30s")
	v.SetDefault("storage.retries", 3)

	v.SetDefault("metrics.enable", false)
	v.SetDefault("metrics.host", "127.0.0.1")
	v.SetDefault("metrics.port", 9464)
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("metrics.pushURL", "")
	v.SetDefault("metrics.job", "phrasetrie")
	v.SetDefault("metrics.pprof", false)

	v.SetDefault("trace.enabled", false)
	v.SetDefault("trace.exporterType", trace.ExporterNone)
	v.SetDefault("trace.endpoint", "")
	v.SetDefault("trace.insecure", false)
}

func (c *AppConfig) normalize() error {
	if c.Render.MaxDepth < 0 {
		return fmt.Errorf("render.maxDepth must not be negative, got %d", c.Render.MaxDepth)
	}
	files := c.Input.Files[:0]
	for _, f := range c.Input.Files {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	c.Input.Files = files

	c.Storage.SetDefaults()
	c.Metrics.SetDefaults()
	c.Trace.SetDefaults()
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("invalid log configuration: %w", err)
	}
	return nil
}
