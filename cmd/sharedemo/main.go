// Command sharedemo builds a small scene, shares its objects and injects them
// into a few consumers, then reports what each consumer received.
//
//	sharedemo --config share.yaml --drop Secondary --strict=false
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/junioryono/gameshare"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("sharedemo", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.StringP("config", "c", "", "YAML configuration file")
	strict := fs.Bool("strict", true, "abort a consumer on its first unresolved member")
	logLevel := fs.String("log-level", "", "override the configured log level")
	enginePower := fs.Int("power", 100, "power of the shared engine")
	drop := fs.StringSlice("drop", nil, "weapon sub keys to leave out of the scene")

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		reportError(stderr, err)
		return 1
	}
	if fs.Changed("strict") {
		cfg.Strict = *strict
	}
	if *logLevel != "" {
		cfg.LogLevel = strings.ToLower(*logLevel)
	}

	reg := prometheus.NewRegistry()
	metrics, err := gameshare.NewMetrics(reg)
	if err != nil {
		reportError(stderr, err)
		return 1
	}

	gs := gameshare.NewGameShare(cfg.Options(cfg.NewLogger(stderr), metrics)...)

	dropped := make(map[string]bool, len(*drop))
	for _, sub := range *drop {
		dropped[sub] = true
	}

	srcs, err := sources(*enginePower, dropped)
	if err != nil {
		reportError(stderr, err)
		return 1
	}
	if err := gameshare.CollectShared(gs, srcs...); err != nil {
		reportError(stderr, err)
		return 1
	}

	fmt.Fprintf(stdout, "game share %s: %d shared objects\n", gs.ID(), gs.Count())
	for _, k := range gs.Keys() {
		fmt.Fprintf(stdout, "  %s\n", k)
	}
	fmt.Fprintln(stdout)

	consumers := []fmt.Stringer{&Player{}, &HUD{}}
	failures := 0
	for _, c := range consumers {
		if err := gs.InjectSharedObjects(c); err != nil {
			failures++
			color.New(color.FgRed, color.Bold).Fprint(stdout, "✗ ")
			fmt.Fprintf(stdout, "%T: %v\n", c, err)
			continue
		}
		color.New(color.FgGreen, color.Bold).Fprint(stdout, "✓ ")
		fmt.Fprintf(stdout, "%T: %s\n", c, c)
	}

	if cfg.Metrics {
		if err := printMetrics(stdout, reg); err != nil {
			reportError(stderr, err)
			return 1
		}
	}

	if failures > 0 {
		return 1
	}
	return 0
}

func loadConfig(path string) (gameshare.Config, error) {
	if path == "" {
		return gameshare.DefaultConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return gameshare.Config{}, err
	}
	defer f.Close()

	return gameshare.LoadConfig(f)
}

func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}

			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				value = float64(m.GetHistogram().GetSampleCount())
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), value)
		}
	}
	return nil
}

func reportError(w io.Writer, err error) {
	color.New(color.FgYellow, color.Bold).Fprint(w, "! ")
	fmt.Fprintf(w, "%v\n", err)
}
