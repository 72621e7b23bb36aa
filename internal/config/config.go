// Package config defines the data structures related to configuration and
// includes functions for loading and converting the config into the model
// types the engine consumes.
package config

import (
	"fmt"

	"github.com/iwvelando/startup-forecast/internal/model"
	"github.com/iwvelando/startup-forecast/internal/optimizer"
	"github.com/iwvelando/startup-forecast/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for startup-forecast.
type Configuration struct {
	Assumptions model.Assumptions
	Decisions   DecisionsConfig
	Optimizer   OptimizerConfig
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty"`
	Server      ServerConfig  `yaml:"server,omitempty"`
	Storage     StorageConfig `yaml:"storage,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// ServerConfig holds the HTTP API options.
type ServerConfig struct {
	Address         string `yaml:"address,omitempty"`
	MaxRequestBytes int64  `yaml:"maxRequestBytes,omitempty"`
}

// StorageConfig holds the optimization result store options.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// DecisionConfig is one month's spend levers with optional price overrides;
// a nil price defers to milestone pricing.
type DecisionConfig struct {
	AdsSpend      float64
	SEOSpend      float64
	DevSpend      float64
	OutreachSpend float64
	PartnerSpend  float64
	ProPrice      *float64
	EntPrice      *float64
}

// MonthOverride replaces the base decision for a single month.
type MonthOverride struct {
	Month    int
	Decision DecisionConfig
}

// DecisionsConfig describes the decision plan for plain simulation runs: a
// base decision applied every month plus optional per-month overrides.
type DecisionsConfig struct {
	Base      DecisionConfig
	Overrides []MonthOverride
}

// OptimizerBound is the knot search interval for one lever.
type OptimizerBound struct {
	Min float64
	Max float64
}

// OptimizerBounds holds the per-lever knot bounds.
type OptimizerBounds struct {
	Ads      OptimizerBound
	SEO      OptimizerBound
	Dev      OptimizerBound
	Outreach OptimizerBound
	Partner  OptimizerBound
}

// OptimizerConfig enumerates the recognized search options.
type OptimizerConfig struct {
	Knots         int
	Trials        int
	Workers       int
	Seed          int64
	Interpolation string
	Sampler       string
	Bounds        OptimizerBounds
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Validate fails fast on malformed assumptions or decision overrides, before
// any simulation or search begins.
func (c *Configuration) Validate() error {
	if err := c.Assumptions.Validate(); err != nil {
		return err
	}
	for _, o := range c.Decisions.Overrides {
		if o.Month < 0 || o.Month >= c.Assumptions.Months {
			return fmt.Errorf("config: decision override month %d outside horizon [0, %d)",
				o.Month, c.Assumptions.Months)
		}
	}
	if _, err := c.DecisionPlan(); err != nil {
		return err
	}
	return nil
}

// DecisionPlan expands the configured base decision and overrides into a
// validated per-month plan.
func (c *Configuration) DecisionPlan() (model.Plan, error) {
	plan := model.ConstantPlan(toDecision(c.Decisions.Base), c.Assumptions.Months)
	for _, o := range c.Decisions.Overrides {
		if o.Month < 0 || o.Month >= len(plan) {
			return nil, fmt.Errorf("config: decision override month %d outside horizon [0, %d)",
				o.Month, len(plan))
		}
		plan[o.Month] = toDecision(o.Decision)
	}
	if err := plan.Validate(c.Assumptions.Months); err != nil {
		return nil, err
	}
	return plan, nil
}

// OptimizerOptions converts the optimizer section into search options;
// zero values fall through to the optimizer's defaults.
func (c *Configuration) OptimizerOptions() optimizer.Options {
	return optimizer.Options{
		Knots:         c.Optimizer.Knots,
		Trials:        c.Optimizer.Trials,
		Workers:       c.Optimizer.Workers,
		Seed:          c.Optimizer.Seed,
		Interpolation: optimizer.Mode(c.Optimizer.Interpolation),
		Sampler:       c.Optimizer.Sampler,
	}
}

// LeverBounds converts the configured per-lever bounds.
func (c *Configuration) LeverBounds() optimizer.LeverBounds {
	return optimizer.LeverBounds{
		Ads:      optimizer.Bounds(c.Optimizer.Bounds.Ads),
		SEO:      optimizer.Bounds(c.Optimizer.Bounds.SEO),
		Dev:      optimizer.Bounds(c.Optimizer.Bounds.Dev),
		Outreach: optimizer.Bounds(c.Optimizer.Bounds.Outreach),
		Partner:  optimizer.Bounds(c.Optimizer.Bounds.Partner),
	}
}

// ServerAddress returns the configured listen address or the default.
func (c *Configuration) ServerAddress() string {
	if c.Server.Address != "" {
		return c.Server.Address
	}
	return constants.DefaultServerAddress
}

func toDecision(dc DecisionConfig) model.Decision {
	d := model.Decision{
		AdsSpend:      dc.AdsSpend,
		SEOSpend:      dc.SEOSpend,
		DevSpend:      dc.DevSpend,
		OutreachSpend: dc.OutreachSpend,
		PartnerSpend:  dc.PartnerSpend,
	}
	if dc.ProPrice != nil {
		d.ProPrice = model.OverridePrice(*dc.ProPrice)
	}
	if dc.EntPrice != nil {
		d.EntPrice = model.OverridePrice(*dc.EntPrice)
	}
	return d
}
