/*
 * modes.go, part of govib.
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
	"github.com/spf13/cobra"
)

// NewModesCommand creates the modes command.
func NewModesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modes [hessian-file]",
		Short: "Normal mode analysis",
		Long: `Obtain the harmonic normal modes from a Hessian file and print their
frequencies and vibrational energies. With --viz, an animation of each mode
is written as a multi-XYZ file.

Example:
  govib modes Hessian.bin
  govib modes Hessian.bin -t 300 --viz modes`,
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
			return sys.analyze(c, cmd.OutOrStdout(), log)
		},
	}
	moleculeFlags(cmd)
	return cmd
}
