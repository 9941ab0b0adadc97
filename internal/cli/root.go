/*
 * root.go, part of govib.
 *
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

// Package cli implements the govib command line interface.
package cli

import (
	"io"
	"os"

	"github.com/rmera/govib/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Config  string // YAML or TOML file

	// LogOutput is where the log goes. If nil, os.Stderr.
	LogOutput io.Writer
}

// NewRootCommand creates the root command for govib.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "govib",
		Short: "Harmonic normal modes and Wigner sampling",
		Long: `govib obtains the harmonic normal modes of a molecule from its Hessian,
and samples initial conditions for dynamics from the Wigner distribution
of the harmonic oscillators at a given temperature.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "configuration file (yaml or toml)")

	cmd.AddCommand(NewSampleCommand(opts))
	cmd.AddCommand(NewModesCommand(opts))

	return cmd
}

func (o *RootOptions) logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	if o.LogOutput != nil {
		l.SetOutput(o.LogOutput)
	}
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	if o.Verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// loadConfig reads the configuration file, if one was given, and applies
// the flags that were set in the command line on top of it.
func (o *RootOptions) loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	c := config.Default()
	var err error
	if o.Config != "" {
		c, err = config.Load(o.Config)
		if err != nil {
			return nil, err
		}
	}
	if len(args) > 0 {
		c.Hessian = args[0]
	}
	f := cmd.Flags()
	var ferr error
	set := func(name string, get func() error) {
		if ferr == nil && f.Lookup(name) != nil && f.Changed(name) {
			ferr = get()
		}
	}
	set("temperature", func() (err error) { c.Temperature, err = f.GetFloat64("temperature"); return })
	set("samples", func() (err error) { c.Samples, err = f.GetInt("samples"); return })
	set("output", func() (err error) { c.OutputDir, err = f.GetString("output"); return })
	set("symbols", func() (err error) { c.Symbols, err = f.GetStringSlice("symbols"); return })
	set("masses", func() (err error) { c.Masses, err = f.GetStringSlice("masses"); return })
	set("seed", func() (err error) { c.Seed, err = f.GetUint64("seed"); return })
	set("workers", func() (err error) { c.Workers, err = f.GetInt("workers"); return })
	set("remove-com-velocity", func() (err error) { c.RemoveCOMVelocity, err = f.GetBool("remove-com-velocity"); return })
	set("trajectory", func() (err error) { c.Trajectory, err = f.GetString("trajectory"); return })
	set("db", func() (err error) { c.Database, err = f.GetString("db"); return })
	set("plot", func() (err error) { c.Plot, err = f.GetString("plot"); return })
	set("viz", func() (err error) { c.Viz.Dir, err = f.GetString("viz"); return })
	set("viz-dx", func() (err error) { c.Viz.Dx, err = f.GetFloat64("viz-dx"); return })
	set("viz-frames", func() (err error) { c.Viz.Frames, err = f.GetInt("viz-frames"); return })
	if ferr != nil {
		return nil, ferr
	}
	if err = c.Check(); err != nil {
		return nil, err
	}
	return c, nil
}

// molecule flags are shared by both commands.
func moleculeFlags(cmd *cobra.Command) {
	d := config.Default()
	cmd.Flags().Float64P("temperature", "t", d.Temperature, "temperature in K")
	cmd.Flags().StringSlice("symbols", nil, "atomic symbols, replacing those in the Hessian file")
	cmd.Flags().StringSlice("masses", nil, "mass overrides, as SYMBOL-MASS in amu (e.g. H-2.014)")
	cmd.Flags().String("viz", d.Viz.Dir, "directory for the normal mode animations (none if empty)")
	cmd.Flags().Float64("viz-dx", d.Viz.Dx, "amplitude scale for the normal mode animations")
	cmd.Flags().Int("viz-frames", d.Viz.Frames, "frames per normal mode animation")
}
