package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/curvelib/calendar"
	"github.com/meenmo/curvelib/daycount"
	"github.com/meenmo/curvelib/quote"
	"github.com/meenmo/curvelib/termstructure"
)

// curveConfig is the YAML curve definition consumed by every subcommand.
type curveConfig struct {
	ReferenceDate  string      `yaml:"reference_date" validate:"required,datetime=2006-01-02"`
	Calendar       string      `yaml:"calendar" validate:"required,oneof=TARGET JPN USD KRW WEEKENDS"`
	DayCount       string      `yaml:"day_count" validate:"required"`
	SettlementDays int         `yaml:"settlement_days" validate:"gte=0"`
	Rate           float64     `yaml:"rate" validate:"gt=-1"`
	Compounding    string      `yaml:"compounding" validate:"required"`
	Frequency      string      `yaml:"frequency"`
	MaxTime        float64     `yaml:"max_time" validate:"gte=0"`
	Extrapolate    bool        `yaml:"extrapolate"`
	Jumps          []jumpEntry `yaml:"jumps" validate:"dive"`
}

type jumpEntry struct {
	Date  string  `yaml:"date" validate:"omitempty,datetime=2006-01-02"`
	Value float64 `yaml:"value" validate:"gt=0"`
}

func loadConfig(path string) (*curveConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curve file: %w", err)
	}
	var cfg curveConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse curve file: %w", err)
	}
	if cfg.Frequency == "" {
		cfg.Frequency = "Annual"
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate curve file: %w", err)
	}
	return &cfg, nil
}

// buildCurve assembles the term structure described by the config.
func buildCurve(cfg *curveConfig) (*termstructure.YieldTermStructure, error) {
	ref, err := time.Parse("2006-01-02", cfg.ReferenceDate)
	if err != nil {
		return nil, fmt.Errorf("reference date: %w", err)
	}
	dc, err := daycount.Parse(cfg.DayCount)
	if err != nil {
		return nil, err
	}
	comp, err := termstructure.ParseCompounding(cfg.Compounding)
	if err != nil {
		return nil, err
	}
	freq, err := termstructure.ParseFrequency(cfg.Frequency)
	if err != nil {
		return nil, err
	}

	var rule termstructure.DiscountRule
	flat, err := termstructure.NewFlatForward(cfg.Rate, dc, comp, freq)
	if err != nil {
		return nil, err
	}
	rule = flat
	if cfg.MaxTime > 0 {
		rule, err = termstructure.NewBoundedRule(flat, cfg.MaxTime)
		if err != nil {
			return nil, err
		}
	}

	var opts []termstructure.Option
	if len(cfg.Jumps) > 0 {
		quotes := make([]quote.Quote, len(cfg.Jumps))
		var dates []time.Time
		for i, j := range cfg.Jumps {
			quotes[i] = quote.NewSimpleQuote(j.Value)
			if j.Date != "" {
				d, err := time.Parse("2006-01-02", j.Date)
				if err != nil {
					return nil, fmt.Errorf("jump date: %w", err)
				}
				dates = append(dates, d)
			}
		}
		if len(dates) > 0 && len(dates) != len(quotes) {
			return nil, fmt.Errorf("jumps must all carry dates, or none")
		}
		opts = append(opts, termstructure.WithJumps(quotes, dates))
	}
	if cfg.Extrapolate {
		opts = append(opts, termstructure.WithExtrapolation())
	}

	return termstructure.NewYieldTermStructure(
		ref, calendar.CalendarID(cfg.Calendar), dc, cfg.SettlementDays, rule, opts...)
}
