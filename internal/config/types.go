package config

// Config represents the pdaxpy configuration file structure
type Config struct {
	// Defaults contains default settings for runs and benchmarks
	Defaults DefaultsConfig `yaml:"defaults" json:"defaults" mapstructure:"defaults"`
}

// DefaultsConfig contains default configuration values
type DefaultsConfig struct {
	// Backend is the executor backend (managed, thread, pool)
	Backend string `yaml:"backend" json:"backend" mapstructure:"backend"`

	// Policy is the failure policy (default, abort, propagate)
	Policy string `yaml:"policy" json:"policy" mapstructure:"policy"`

	// Workers is the number of parallel workers; 0 means runtime.NumCPU()
	Workers int `yaml:"workers" json:"workers" mapstructure:"workers"`

	// Size is the vector length
	Size int `yaml:"size" json:"size" mapstructure:"size"`

	// Alpha is the scalar multiplier
	Alpha float64 `yaml:"alpha" json:"alpha" mapstructure:"alpha"`

	// YOffset is added to the initial y values (y[i] = i + YOffset)
	YOffset float64 `yaml:"yOffset" json:"yOffset" mapstructure:"yOffset"`

	// Repeat is the number of timed runs per measurement
	Repeat int `yaml:"repeat" json:"repeat" mapstructure:"repeat"`

	// Pin pins thread backend workers to CPUs
	Pin bool `yaml:"pin" json:"pin" mapstructure:"pin"`

	// OutputFormat is the default output format (table, json, yaml)
	OutputFormat string `yaml:"outputFormat" json:"outputFormat" mapstructure:"outputFormat"`

	// NoColor disables colored output
	NoColor bool `yaml:"noColor" json:"noColor" mapstructure:"noColor"`
}
