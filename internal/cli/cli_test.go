/*
 * cli_test.go, part of govib.
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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/govib"
	"github.com/rmera/govib/internal/testutil"
	"github.com/rmera/govib/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(Te *testing.T, args ...string) (string, error) {
	Te.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSample(Te *testing.T) {
	G, H := testutil.Water()
	hess := testutil.WriteHessian(Te, G, H)
	dir := Te.TempDir()
	out := filepath.Join(dir, "wigner")
	traj := filepath.Join(dir, "all.xyz.zst")
	db := filepath.Join(dir, "samples.db")
	plot := filepath.Join(dir, "energies.png")
	text, err := execute(Te, "sample", hess, "-t", "300", "-n", "6", "-o", out, "--seed", "11",
		"--workers", "2", "--trajectory", traj, "--db", db, "--plot", plot)
	require.NoError(Te, err)
	fmt.Print(text)
	assert.Contains(Te, text, "=> Normal Mode Analysis <=")
	assert.Contains(Te, text, "seed 11")
	assert.Contains(Te, text, "6 of 6 samples succeeded")
	report, err := os.ReadFile(filepath.Join(out, ReportFile))
	require.NoError(Te, err)
	assert.Contains(Te, string(report), "seed 11")
	assert.Contains(Te, string(report), "6 of 6 samples succeeded")
	for i := 0; i < 6; i++ {
		for _, f := range []string{"x%04d.xyz", "p%04d.xyz", "v%04d.xyz", "Geometry%04d.dat"} {
			_, err := os.Stat(filepath.Join(out, fmt.Sprintf(f, i)))
			assert.NoError(Te, err)
		}
	}
	frames, err := sink.ReadTrajectory(traj)
	require.NoError(Te, err)
	assert.Len(Te, frames, 6)
	_, err = os.Stat(plot)
	assert.NoError(Te, err)

	//the same seed gives the same samples
	out2 := filepath.Join(dir, "again")
	_, err = execute(Te, "sample", hess, "-t", "300", "-n", "6", "-o", out2, "--seed", "11", "--workers", "5")
	require.NoError(Te, err)
	for i := 0; i < 6; i++ {
		a, err := os.ReadFile(filepath.Join(out, fmt.Sprintf("x%04d.xyz", i)))
		require.NoError(Te, err)
		b, err := os.ReadFile(filepath.Join(out2, fmt.Sprintf("x%04d.xyz", i)))
		require.NoError(Te, err)
		assert.Equal(Te, a, b)
	}
}

func TestConfigFile(Te *testing.T) {
	G, H := testutil.Water()
	hess := testutil.WriteHessian(Te, G, H)
	dir := Te.TempDir()
	cfg := filepath.Join(dir, "run.yaml")
	content := fmt.Sprintf("hessian: %s\nsamples: 2\noutput_dir: %s\nmasses: [\"H-2.014\"]\nseed: 3\n", hess, filepath.Join(dir, "out"))
	require.NoError(Te, os.WriteFile(cfg, []byte(content), 0o644))
	//the flag takes precedence over the file
	text, err := execute(Te, "sample", "-c", cfg, "-n", "3")
	require.NoError(Te, err)
	assert.Contains(Te, text, "3 of 3 samples succeeded")
	_, err = os.Stat(filepath.Join(dir, "out", "x0002.xyz"))
	assert.NoError(Te, err)

	_, err = execute(Te, "sample", "-c", cfg, "--masses", "H=2")
	assert.True(Te, errors.Is(err, chem.ErrConfig))
	_, err = execute(Te, "sample", "-n", "2")
	assert.ErrorContains(Te, err, "Hessian")
}

func TestModes(Te *testing.T) {
	G, H := testutil.Water()
	hess := testutil.WriteHessian(Te, G, H)
	viz := filepath.Join(Te.TempDir(), "viz")
	text, err := execute(Te, "modes", hess, "--viz", viz, "--viz-frames", "8")
	require.NoError(Te, err)
	assert.Contains(Te, text, "ZPVE =")
	for i := 0; i < 3; i++ {
		f, err := os.Open(filepath.Join(viz, fmt.Sprintf("%04d.xyz", i)))
		require.NoError(Te, err)
		frames, err := chem.XYZTrajRead(f, chem.A2Bohr)
		f.Close()
		require.NoError(Te, err)
		assert.Len(Te, frames, 8)
	}
}

func TestImaginary(Te *testing.T) {
	G, H := testutil.Triangle("H", 1.6, -0.3)
	hess := testutil.WriteHessian(Te, G, H)
	//the analysis works, but the sampling doesn't
	_, err := execute(Te, "modes", hess)
	require.NoError(Te, err)
	_, err = execute(Te, "sample", hess, "-o", filepath.Join(Te.TempDir(), "w"))
	assert.True(Te, errors.Is(err, chem.ErrImaginaryMode))

	L, LH := testutil.Linear()
	_, err = execute(Te, "modes", testutil.WriteHessian(Te, L, LH))
	assert.True(Te, errors.Is(err, chem.ErrMalformedInput))
}
