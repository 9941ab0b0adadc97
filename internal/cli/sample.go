/*
 * sample.go, part of govib.
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

package cli

import (
	"github.com/rmera/govib/internal/config"
	"github.com/spf13/cobra"
)

// NewSampleCommand creates the sample command.
func NewSampleCommand(rootOpts *RootOptions) *cobra.Command {
	d := config.Default()
	cmd := &cobra.Command{
		Use:   "sample [hessian-file]",
		Short: "Wigner sampling of the harmonic modes",
		Long: `Sample positions and momenta from the Wigner distribution of the harmonic
normal modes at a given temperature. Each sample is written to the output
directory as x%04d.xyz (positions, Angstrom), p%04d.xyz (momenta, au),
v%04d.xyz (velocities, AMBER units) and Geometry%04d.dat (FMS90 format).

Example:
  govib sample Hessian.bin -t 300 -n 100
  govib sample -c run.yaml --trajectory all.xyz.zst --db samples.db`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := rootOpts.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			log := rootOpts.logger()
			sys, err := loadSystem(c, log)
			if err != nil {
				return err
			}
			if err = sys.analyze(c, cmd.OutOrStdout(), log); err != nil {
				return err
			}
			_, err = sys.sample(cmd.Context(), c, cmd.OutOrStdout(), log)
			return err
		},
	}
	moleculeFlags(cmd)
	cmd.Flags().IntP("samples", "n", d.Samples, "number of samples")
	cmd.Flags().StringP("output", "o", d.OutputDir, "directory for the sample files")
	cmd.Flags().Uint64("seed", d.Seed, "random seed (0 takes one from the clock)")
	cmd.Flags().Int("workers", d.Workers, "concurrent samplers (0 for one per CPU)")
	cmd.Flags().Bool("remove-com-velocity", d.RemoveCOMVelocity, "remove the center of mass velocity from each sample")
	cmd.Flags().String("trajectory", d.Trajectory, "multi-XYZ file with all the sampled geometries (.zst, .gz, .z, .lzw to compress)")
	cmd.Flags().String("db", d.Database, "SQLite database to store the samples")
	cmd.Flags().String("plot", d.Plot, "image file with the histogram of the sample energies")
	return cmd
}
