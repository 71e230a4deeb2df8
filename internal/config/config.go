// Package config resolves skelplot settings from defaults, an optional
// config file, SKELPLOT_* environment variables and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"skelplot/internal/mathutil"
	"skelplot/internal/scene"
)

// DefaultModel is the MJCF file rendered when none is given.
const DefaultModel = "assets/mjcf/amp_humanoid.xml"

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir string `mapstructure:"base_dir"`
	Model   string `mapstructure:"model"`
	Output  string `mapstructure:"output"`

	// Render settings
	Size        int     `mapstructure:"size"`
	Supersample int     `mapstructure:"supersample"`
	Azimuth     float64 `mapstructure:"azimuth"`
	Elevation   float64 `mapstructure:"elevation"`
	AxisRange   float64 `mapstructure:"axis_range"`
	LabelSize   float64 `mapstructure:"label_size"`
	Views       int     `mapstructure:"views"`
	Workers     int     `mapstructure:"workers"`

	// Chains maps an overlay name to the joint names it passes through.
	Chains     map[string][]string `mapstructure:"chains"`
	DrawChains bool                `mapstructure:"draw_chains"`
}

// DefaultChains are the spine, hands and legs of the AMP humanoid.
func DefaultChains() map[string][]string {
	return map[string][]string{
		"spine": {"pelvis", "torso", "head"},
		"hands": {"left_hand", "left_lower_arm", "left_upper_arm", "torso", "right_upper_arm", "right_lower_arm", "right_hand"},
		"legs":  {"left_foot", "left_shin", "left_thigh", "pelvis", "right_thigh", "right_shin", "right_foot"},
	}
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("model", DefaultModel)
	v.SetDefault("output", "skeleton.png")
	v.SetDefault("size", 640)
	v.SetDefault("supersample", 2)
	v.SetDefault("azimuth", mathutil.DefaultAzimuth)
	v.SetDefault("elevation", mathutil.DefaultElevation)
	v.SetDefault("axis_range", scene.DefaultAxisRange)
	v.SetDefault("label_size", 6.0)
	v.SetDefault("views", 1)
	v.SetDefault("workers", 0)
	v.SetDefault("draw_chains", false)
}

// NewViper returns a viper instance with defaults and SKELPLOT_* env binding.
// Flag names use dashes; keys use underscores.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("SKELPLOT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile loads path, or .skelplot.{yaml,json,...} from . and $HOME when
// path is empty. A missing default file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".skelplot")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "config: read")
	}
	return nil
}

// Load unmarshals v into a Config and resolves it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: unmarshal")
	}
	if cfg.BaseDir == "" && v.ConfigFileUsed() != "" {
		cfg.BaseDir = filepath.Dir(v.ConfigFileUsed())
	}
	cfg.Resolve()
	return cfg, nil
}

// Resolve fills in any empty fields with defaults and makes relative paths
// absolute against BaseDir.
func (c *Config) Resolve() {
	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	if c.Model == "" {
		c.Model = DefaultModel
	}
	if !filepath.IsAbs(c.Model) {
		c.Model = filepath.Join(c.BaseDir, c.Model)
	}
	if c.Output == "" {
		c.Output = "skeleton.png"
	}
	if !filepath.IsAbs(c.Output) {
		c.Output = filepath.Join(c.BaseDir, c.Output)
	}

	// Defaults for render settings
	if c.Size <= 0 {
		c.Size = 640
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.AxisRange <= 0 {
		c.AxisRange = scene.DefaultAxisRange
	}
	if c.LabelSize < 0 {
		c.LabelSize = 0
	}
	if c.Views <= 0 {
		c.Views = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if len(c.Chains) == 0 {
		c.Chains = DefaultChains()
	}
}
