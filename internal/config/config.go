// Package config loads match settings the way the teacher's
// reinforcement.FromYaml does: viper reads an optional YAML file into a
// loosely-typed document, which is then strictly unmarshaled via
// gopkg.in/yaml.v3 into the typed MatchConfig below; flag-backed CLI
// options (main.go's idiom) override individual fields afterward, so a
// YAML file is optional and flags always win.
package config

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// MatchConfig is every knob spec §4.6/§6 exposes for one match run.
type MatchConfig struct {
	Width       int     `mapstructure:"width" yaml:"width"`
	Height      int     `mapstructure:"height" yaml:"height"`
	CheeseCount int     `mapstructure:"cheese" yaml:"cheese"`
	WallDensity float64 `mapstructure:"wallDensity" yaml:"wallDensity"`
	MudDensity  float64 `mapstructure:"mudDensity" yaml:"mudDensity"`
	Symmetric   bool    `mapstructure:"symmetric" yaml:"symmetric"`
	Seed        int64   `mapstructure:"seed" yaml:"seed"`
	MaxTurns    int     `mapstructure:"maxTurns" yaml:"maxTurns"`

	MoveTimeoutSec           float64 `mapstructure:"timeout" yaml:"timeout"`
	PreprocessingTimeoutSec  float64 `mapstructure:"preprocessing" yaml:"preprocessing"`
	PostprocessingTimeoutSec float64 `mapstructure:"postprocessing" yaml:"postprocessing"`
	DelaySec                 float64 `mapstructure:"delay" yaml:"delay"`

	LogDir        string `mapstructure:"logDir" yaml:"logDir"`
	Dashboard     bool   `mapstructure:"dashboard" yaml:"dashboard"`
	DashboardAddr string `mapstructure:"dashboardAddr" yaml:"dashboardAddr"`
}

// Defaults returns the baseline values spec §3/§4.6/§6 names, before any
// YAML file or flag is applied.
func Defaults() MatchConfig {
	return MatchConfig{
		Width:                    21,
		Height:                   15,
		CheeseCount:              10,
		WallDensity:              0.3,
		MudDensity:               0.1,
		Symmetric:                true,
		MaxTurns:                 300,
		MoveTimeoutSec:           0.1,
		PreprocessingTimeoutSec:  3.0,
		PostprocessingTimeoutSec: 1.0,
		DashboardAddr:            ":8089",
	}
}

// FromYaml loads path (if it exists) over top of Defaults. A missing file
// is not an error — the match simply runs on defaults plus whatever flags
// supply, same tolerance as a from-scratch run with no config file at all.
func FromYaml(path string) (MatchConfig, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound || os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	raw := map[string]interface{}{}
	if err := vp.Unmarshal(&raw); err != nil {
		return cfg, err
	}

	spec, err := yaml.Marshal(raw)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(spec, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// BindFlags registers one flag per MatchConfig field against fs, storing
// results back into cfg on Parse — overriding whatever FromYaml already
// set, per this package's "flags always win" contract.
func BindFlags(fs *flag.FlagSet, cfg *MatchConfig) {
	fs.IntVar(&cfg.Width, "width", cfg.Width, "board width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "board height")
	fs.IntVar(&cfg.CheeseCount, "cheese", cfg.CheeseCount, "cheese count")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "maze generator seed (0 = random)")
	fs.IntVar(&cfg.MaxTurns, "max-turns", cfg.MaxTurns, "turn limit")
	fs.Float64Var(&cfg.MoveTimeoutSec, "timeout", cfg.MoveTimeoutSec, "per-move timeout, seconds")
	fs.Float64Var(&cfg.PreprocessingTimeoutSec, "preprocessing", cfg.PreprocessingTimeoutSec, "preprocessing timeout, seconds")
	fs.Float64Var(&cfg.PostprocessingTimeoutSec, "postprocessing", cfg.PostprocessingTimeoutSec, "postprocessing timeout, seconds")
	fs.Float64Var(&cfg.DelaySec, "delay", cfg.DelaySec, "inter-turn display delay, seconds")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "optional directory for run logs")
	fs.BoolVar(&cfg.Dashboard, "dashboard", cfg.Dashboard, "serve a live spectator dashboard")
	fs.StringVar(&cfg.DashboardAddr, "dashboard-addr", cfg.DashboardAddr, "dashboard listen address")
}
