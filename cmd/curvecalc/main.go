// curvecalc evaluates a yield term structure defined in a YAML file:
// discount factors, zero rates, and forward rates at arbitrary dates.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/meenmo/curvelib/daycount"
	"github.com/meenmo/curvelib/termstructure"
)

var (
	curveFile   string
	extrapolate bool
	resultDC    string
	compounding string
	frequency   string

	curve *termstructure.YieldTermStructure
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "curvecalc",
	Short: "Evaluate a yield term structure from a YAML curve file",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(curveFile)
		if err != nil {
			return err
		}
		curve, err = buildCurve(cfg)
		if err != nil {
			return err
		}
		ref, err := curve.ReferenceDate()
		if err != nil {
			return err
		}
		log.Info().
			Str("curve", curveFile).
			Str("reference", ref.Format("2006-01-02")).
			Int("jumps", len(curve.JumpDates())).
			Msg("curve loaded")
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&curveFile, "curve", "c", "curve.yaml", "YAML curve definition")
	rootCmd.PersistentFlags().BoolVar(&extrapolate, "extrapolate", false, "allow evaluation past the curve horizon")
	rootCmd.PersistentFlags().StringVar(&resultDC, "result-day-count", "ACT/365F", "day count for reported rates")
	rootCmd.PersistentFlags().StringVar(&compounding, "compounding", "Continuous", "compounding for reported rates")
	rootCmd.PersistentFlags().StringVar(&frequency, "frequency", "Annual", "frequency for reported rates")

	rootCmd.AddCommand(discountCmd)
	rootCmd.AddCommand(zeroCmd)
	rootCmd.AddCommand(forwardCmd)
	rootCmd.AddCommand(tableCmd)
}

func resultConvention() (daycount.DayCounter, termstructure.Compounding, termstructure.Frequency, error) {
	dc, err := daycount.Parse(resultDC)
	if err != nil {
		return nil, 0, 0, err
	}
	comp, err := termstructure.ParseCompounding(compounding)
	if err != nil {
		return nil, 0, 0, err
	}
	freq, err := termstructure.ParseFrequency(frequency)
	if err != nil {
		return nil, 0, 0, err
	}
	return dc, comp, freq, nil
}

func parseDate(arg string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: expected YYYY-MM-DD", arg)
	}
	return d, nil
}

var discountCmd = &cobra.Command{
	Use:   "discount <date>",
	Short: "Discount factor at a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := parseDate(args[0])
		if err != nil {
			return err
		}
		df, err := curve.Discount(d, extrapolate)
		if err != nil {
			return err
		}
		fmt.Printf("%s  DF = %.10f\n", d.Format("2006-01-02"), df)
		return nil
	},
}

var zeroCmd = &cobra.Command{
	Use:   "zero <date>",
	Short: "Zero-coupon yield at a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := parseDate(args[0])
		if err != nil {
			return err
		}
		dc, comp, freq, err := resultConvention()
		if err != nil {
			return err
		}
		zr, err := curve.ZeroRate(d, dc, comp, freq, extrapolate)
		if err != nil {
			return err
		}
		fmt.Printf("%s  zero = %.6f%%  (%s)\n", d.Format("2006-01-02"), zr.Rate()*100, zr)
		return nil
	},
}

var forwardCmd = &cobra.Command{
	Use:   "forward <start> <end>",
	Short: "Forward rate between two dates (equal dates give the instantaneous forward)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d1, err := parseDate(args[0])
		if err != nil {
			return err
		}
		d2, err := parseDate(args[1])
		if err != nil {
			return err
		}
		dc, comp, freq, err := resultConvention()
		if err != nil {
			return err
		}
		fwd, err := curve.ForwardRate(d1, d2, dc, comp, freq, extrapolate)
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s  forward = %.6f%%  (%s)\n",
			d1.Format("2006-01-02"), d2.Format("2006-01-02"), fwd.Rate()*100, fwd)
		return nil
	},
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Discount/zero/forward grid over the curve horizon",
	RunE: func(cmd *cobra.Command, args []string) error {
		years, err := cmd.Flags().GetFloat64("years")
		if err != nil {
			return err
		}
		step, err := cmd.Flags().GetFloat64("step")
		if err != nil {
			return err
		}
		if step <= 0 || years <= 0 {
			return fmt.Errorf("years and step must be positive")
		}

		_, comp, freq, err := resultConvention()
		if err != nil {
			return err
		}

		fmt.Printf("%8s  %14s  %12s  %12s\n", "t", "discount", "zero", "inst fwd")
		for t := step; t <= years+1e-12; t += step {
			df, err := curve.DiscountAtTime(t, extrapolate)
			if err != nil {
				return err
			}
			zr, err := curve.ZeroRateAtTime(t, comp, freq, extrapolate)
			if err != nil {
				return err
			}
			fwd, err := curve.ForwardRateBetweenTimes(t, t, comp, freq, extrapolate)
			if err != nil {
				return err
			}
			fmt.Printf("%8.3f  %14.10f  %11.6f%%  %11.6f%%\n",
				t, df, zr.Rate()*100, fwd.Rate()*100)
		}
		return nil
	},
}

func init() {
	tableCmd.Flags().Float64("years", 10, "horizon in years")
	tableCmd.Flags().Float64("step", 0.5, "grid step in years")
}
