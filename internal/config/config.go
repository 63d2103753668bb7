package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/aryankumar/pdaxpy/internal/executor"
	"github.com/aryankumar/pdaxpy/internal/util"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultConfigName = ".pdaxpy"
	defaultConfigDir  = ".pdaxpy"
	defaultConfigFile = "config.yaml"
	envPrefix         = "PDAXPY"
)

// Default values, taken from the reference benchmark driver
const (
	DefaultSize         = 38525
	DefaultAlpha        = 1.37
	DefaultYOffset      = 3.25
	DefaultRepeat       = 1
	DefaultBackend      = "managed"
	DefaultPolicy       = "default"
	DefaultOutputFormat = "table"
)

// Manager handles pdaxpy configuration
type Manager struct {
	configPath string
	config     *Config
	viper      *viper.Viper
}

// NewManager creates a new configuration manager
func NewManager(configPath string) *Manager {
	m := &Manager{
		configPath: configPath,
		viper:      viper.New(),
		config:     &Config{},
	}
	setDefaults(m.viper)
	return m
}

// setDefaults registers every key so env overrides and zero values behave
func setDefaults(v *viper.Viper) {
	v.SetDefault("defaults.backend", DefaultBackend)
	v.SetDefault("defaults.policy", DefaultPolicy)
	v.SetDefault("defaults.workers", 0)
	v.SetDefault("defaults.size", DefaultSize)
	v.SetDefault("defaults.alpha", DefaultAlpha)
	v.SetDefault("defaults.yOffset", DefaultYOffset)
	v.SetDefault("defaults.repeat", DefaultRepeat)
	v.SetDefault("defaults.pin", false)
	v.SetDefault("defaults.outputFormat", DefaultOutputFormat)
	v.SetDefault("defaults.noColor", false)
}

// BindFlag makes a command-line flag override the given key once the user sets it
func (m *Manager) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag to bind for key %q", key)
	}
	if err := m.viper.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("failed to bind flag %q: %w", flag.Name, err)
	}
	return nil
}

// Load loads the pdaxpy configuration from file and environment
func (m *Manager) Load() (*Config, error) {
	path := m.configPath
	if path == "" {
		found, err := findDefaultConfig()
		if err != nil {
			return nil, err
		}
		path = found
	}

	// PDAXPY_DEFAULTS_SIZE overrides defaults.size
	m.viper.SetEnvPrefix(envPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	m.config = &Config{}

	if path != "" {
		m.viper.SetConfigFile(path)
		if err := m.viper.ReadInConfig(); err != nil {
			// A missing file means defaults; anything else is a broken file
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if err := m.viper.Unmarshal(m.config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	m.applyDefaults()

	return m.config, nil
}

// findDefaultConfig returns the first existing default config file:
// ~/.pdaxpy/config.yaml, then ~/.pdaxpy.yaml. It returns "" if neither exists.
func findDefaultConfig() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	candidates := []string{
		filepath.Join(home, defaultConfigDir, defaultConfigFile),
		filepath.Join(home, defaultConfigName+".yaml"),
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", nil
}

// SavePath returns the file Save writes to: the explicit path, the file that
// was loaded, or ~/.pdaxpy/config.yaml
func (m *Manager) SavePath() (string, error) {
	if path := m.Path(); path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, defaultConfigDir, defaultConfigFile), nil
}

// Save saves the current configuration to file
func (m *Manager) Save() error {
	path, err := m.SavePath()
	if err != nil {
		return err
	}
	m.configPath = path

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := m.viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Path returns the file the configuration was read from or will be saved to
func (m *Manager) Path() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return m.configPath
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *Config {
	return m.config
}

// SetDefaults replaces the defaults section, in memory and for the next Save
func (m *Manager) SetDefaults(d DefaultsConfig) {
	m.config.Defaults = d

	m.viper.Set("defaults.backend", d.Backend)
	m.viper.Set("defaults.policy", d.Policy)
	m.viper.Set("defaults.workers", d.Workers)
	m.viper.Set("defaults.size", d.Size)
	m.viper.Set("defaults.alpha", d.Alpha)
	m.viper.Set("defaults.yOffset", d.YOffset)
	m.viper.Set("defaults.repeat", d.Repeat)
	m.viper.Set("defaults.pin", d.Pin)
	m.viper.Set("defaults.outputFormat", d.OutputFormat)
	m.viper.Set("defaults.noColor", d.NoColor)
}

// applyDefaults fills values that cannot be left empty
func (m *Manager) applyDefaults() {
	if m.config == nil {
		return
	}

	if m.config.Defaults.Backend == "" {
		m.config.Defaults.Backend = DefaultBackend
	}

	if m.config.Defaults.Policy == "" {
		m.config.Defaults.Policy = DefaultPolicy
	}

	if m.config.Defaults.Repeat == 0 {
		m.config.Defaults.Repeat = DefaultRepeat
	}

	if m.config.Defaults.OutputFormat == "" {
		m.config.Defaults.OutputFormat = DefaultOutputFormat
	}
}

// Validate checks the configuration for values the executor cannot accept
func (c *Config) Validate() error {
	d := c.Defaults
	var errs util.MultiError

	if _, err := executor.ParseBackend(d.Backend); err != nil {
		errs.Add(util.NewValidationError("defaults.backend", d.Backend, "must be one of managed, thread, pool"))
	}
	if _, err := executor.ParsePolicy(d.Policy); err != nil {
		errs.Add(util.NewValidationError("defaults.policy", d.Policy, "must be one of default, abort, propagate"))
	}
	if d.Workers < 0 {
		errs.Add(util.NewValidationError("defaults.workers", d.Workers, "must not be negative"))
	}
	if d.Size < 0 {
		errs.Add(util.NewValidationError("defaults.size", d.Size, "must not be negative"))
	}
	if d.Repeat < 0 {
		errs.Add(util.NewValidationError("defaults.repeat", d.Repeat, "must not be negative"))
	}
	switch d.OutputFormat {
	case "table", "json", "yaml":
	default:
		errs.Add(util.NewValidationError("defaults.outputFormat", d.OutputFormat, "must be one of table, json, yaml"))
	}

	return errs.ErrorOrNil()
}

// EffectiveWorkers resolves the configured worker count, 0 meaning one per CPU
func (d DefaultsConfig) EffectiveWorkers() int {
	if d.Workers <= 0 {
		return runtime.NumCPU()
	}
	return d.Workers
}
