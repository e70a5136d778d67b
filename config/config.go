// Package config loads basketmine settings from defaults, an optional YAML
// file and BASKETMINE_* environment variables, in that order of precedence.
package config

import (
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/YuminosukeSato/basketmine/dataset"
	"github.com/YuminosukeSato/basketmine/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// BASKETMINE_MINING_MIN_SUPPORT=0.02 sets mining.min_support.
const EnvPrefix = "BASKETMINE_"

// Config is the complete runtime configuration.
type Config struct {
	Mining MiningConfig `koanf:"mining"`
	Data   DataConfig   `koanf:"data"`
	Output OutputConfig `koanf:"output"`
	Log    LogConfig    `koanf:"log"`
}

// MiningConfig holds the Apriori parameters.
type MiningConfig struct {
	MinSupport float64 `koanf:"min_support" validate:"gt=0,lte=1"`
	// MaxLen caps itemset size; 0 means unlimited.
	MaxLen int `koanf:"max_len" validate:"gte=0"`
	// Jobs is the number of counting workers; -1 uses every CPU.
	Jobs int `koanf:"jobs" validate:"gte=-1,ne=0"`
}

// DataConfig describes the input log.
type DataConfig struct {
	GroupBy      []string `koanf:"group_by" validate:"min=1,dive,required"`
	ItemColumn   string   `koanf:"item_column" validate:"required"`
	KeySeparator string   `koanf:"key_separator"`
	Delimiter    string   `koanf:"delimiter" validate:"omitempty,len=1"`
}

// OutputConfig controls exports.
type OutputConfig struct {
	Dir     string   `koanf:"dir" validate:"required"`
	Formats []string `koanf:"formats" validate:"dive,oneof=csv json"`
	// Chart is the path of the top-itemsets chart; empty disables it.
	Chart string `koanf:"chart"`
	Top   int    `koanf:"top" validate:"gte=1"`
	// Metrics is the path of the Prometheus textfile; empty disables it.
	Metrics string `koanf:"metrics"`
}

// LogConfig configures pkg/log.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=console json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Mining: MiningConfig{
			MinSupport: 0.05,
			Jobs:       1,
		},
		Data: DataConfig{
			GroupBy:      []string{dataset.DefaultKeyColumn},
			ItemColumn:   dataset.DefaultItemColumn,
			KeySeparator: dataset.DefaultKeySeparator,
			Delimiter:    ",",
		},
		Output: OutputConfig{
			Dir:     ".",
			Formats: []string{"csv"},
			Top:     10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// sliceConfigPaths are split on commas when they arrive as env strings.
var sliceConfigPaths = []string{
	"data.group_by",
	"output.formats",
}

// Load layers defaults, the YAML file at path (skipped when path is empty)
// and environment variables, then validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, errors.Wrap(err, "config: loading defaults")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "config: loading %s", path)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, errors.Wrap(err, "config: loading environment")
	}
	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshaling")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envTransformFunc maps BASKETMINE_MINING_MIN_SUPPORT to mining.min_support.
// Section names never contain underscores, so only the first one is a
// separator.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(s, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return errors.Wrapf(err, "config: setting %s", path)
		}
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("koanf"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks every field and reports the first violation as a
// ValidationError named by its dotted config path.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(err, "config: validating")
	}
	fe := verrs[0]
	param := fe.Namespace()
	if i := strings.Index(param, "."); i >= 0 {
		param = param[i+1:]
	}
	reason := "failed " + fe.Tag()
	if fe.Param() != "" {
		reason += "=" + fe.Param()
	}
	return errors.NewValidationError(param, reason, fe.Value())
}

// Schema returns the loader schema described by Data.
func (c *Config) Schema() dataset.Schema {
	return dataset.Schema{
		KeyColumns:   append([]string(nil), c.Data.GroupBy...),
		ItemColumn:   c.Data.ItemColumn,
		KeySeparator: c.Data.KeySeparator,
	}
}

// Delimiter returns the CSV field delimiter, ',' when unset.
func (c *Config) Delimiter() rune {
	if c.Data.Delimiter == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(c.Data.Delimiter)
	return r
}
