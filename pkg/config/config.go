package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config describes one generation run: where the documentation lives, which documents to
// read and where the generated Go files go.
type Config struct {
	// InputDir is the documentation root; document paths below are relative to it.
	InputDir  string `mapstructure:"input_dir" yaml:"input_dir"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	Package   string `mapstructure:"package" yaml:"package"`

	APIFile     string   `mapstructure:"api_file" yaml:"api_file"`
	EventFiles  []string `mapstructure:"event_files" yaml:"event_files"`
	SegmentFile string   `mapstructure:"segment_file" yaml:"segment_file"`

	// EventNames maps an event heading to the Go type name to generate for it.
	EventNames map[string]string `mapstructure:"event_names" yaml:"event_names,omitempty"`

	// MaxWorkers bounds how many documents are parsed at once.
	MaxWorkers int `mapstructure:"max_workers" yaml:"max_workers"`

	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

type LoggingConfig struct {
	// Level is one of "trace", "debug", "info", "warn", "error".
	Level string `mapstructure:"level" yaml:"level"`
	// Format is "console" or "json".
	Format string `mapstructure:"format" yaml:"format"`
}

func Default() *Config {
	return &Config{
		InputDir:    ".",
		OutputDir:   "models",
		Package:     "models",
		APIFile:     filepath.Join("api", "public.md"),
		EventFiles:  defaultEventFiles(),
		SegmentFile: filepath.Join("message", "segment.md"),
		MaxWorkers:  4,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func defaultEventFiles() []string {
	return []string{
		filepath.Join("event", "message.md"),
		filepath.Join("event", "notice.md"),
		filepath.Join("event", "request.md"),
		filepath.Join("event", "meta.md"),
	}
}

// flagKeys maps config keys to the command-line flags that override them.
var flagKeys = map[string]string{
	"input_dir":      "input",
	"output_dir":     "output",
	"package":        "package",
	"logging.level":  "log-level",
	"logging.format": "log-format",
}

// Load layers configuration from, in increasing priority: defaults, the YAML file at path
// (skipped when path is empty), OBMG_* environment variables and changed flags.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("problem reading config file '%s': %w", path, err)
		}
	}

	v.SetEnvPrefix("OBMG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("problem binding flag '%s': %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("problem unmarshalling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("input_dir", cfg.InputDir)
	v.SetDefault("output_dir", cfg.OutputDir)
	v.SetDefault("package", cfg.Package)
	v.SetDefault("api_file", cfg.APIFile)
	v.SetDefault("event_files", cfg.EventFiles)
	v.SetDefault("segment_file", cfg.SegmentFile)
	v.SetDefault("event_names", map[string]string{})
	v.SetDefault("max_workers", cfg.MaxWorkers)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.InputDir) == "" {
		return fmt.Errorf("%w: input_dir is empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%w: output_dir is empty", ErrInvalidConfig)
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("%w: package %q is not a valid Go package name", ErrInvalidConfig, c.Package)
	}
	if c.MaxWorkers <= 0 {
		return fmt.Errorf("%w: max_workers must be positive, got %d", ErrInvalidConfig, c.MaxWorkers)
	}
	for heading, name := range c.EventNames {
		if !token.IsIdentifier(name) || !token.IsExported(name) {
			return fmt.Errorf("%w: event_names[%s] %q is not an exported Go identifier", ErrInvalidConfig, heading, name)
		}
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q must be console or json", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

func (c *Config) APIPath() string {
	return c.resolve(c.APIFile)
}

func (c *Config) EventPaths() []string {
	paths := make([]string, 0, len(c.EventFiles))
	for _, f := range c.EventFiles {
		paths = append(paths, c.resolve(f))
	}
	return paths
}

func (c *Config) SegmentPath() string {
	return c.resolve(c.SegmentFile)
}

// EventName returns the configured Go name for an event heading. viper folds map keys to
// lower case, so the lookup tries both spellings.
func (c *Config) EventName(heading string) (string, bool) {
	if name, ok := c.EventNames[heading]; ok {
		return name, true
	}
	name, ok := c.EventNames[strings.ToLower(heading)]
	return name, ok
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.InputDir, path)
}

// WriteFile saves the configuration as YAML, refusing to overwrite an existing file.
func (c *Config) WriteFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("problem marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("problem creating config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("problem creating config file '%s': %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("problem writing config file '%s': %w", path, err)
	}
	return nil
}
