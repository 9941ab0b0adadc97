/*
 * config_test.go, part of govib.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
hessian: water.hess
temperature: 300
samples: 100
symbols: [O, H, H]
masses: ["H-2.014"]
seed: 17
trajectory: all.xyz.zst
viz:
  dir: modes
  frames: 10
`

const tomlConfig = `
hessian = "water.hess"
temperature = 300.0
samples = 100
symbols = ["O", "H", "H"]
masses = ["H-2.014"]
seed = 17
trajectory = "all.xyz.zst"

[viz]
dir = "modes"
frames = 10
`

func write(Te *testing.T, name, content string) string {
	Te.Helper()
	p := filepath.Join(Te.TempDir(), name)
	require.NoError(Te, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad(Te *testing.T) {
	for name, content := range map[string]string{"run.yaml": yamlConfig, "run.toml": tomlConfig} {
		c, err := Load(write(Te, name, content))
		require.NoError(Te, err, name)
		assert.Equal(Te, "water.hess", c.Hessian)
		assert.Equal(Te, 300.0, c.Temperature)
		assert.Equal(Te, 100, c.Samples)
		assert.Equal(Te, []string{"O", "H", "H"}, c.Symbols)
		assert.Equal(Te, []string{"H-2.014"}, c.Masses)
		assert.Equal(Te, uint64(17), c.Seed)
		assert.Equal(Te, "all.xyz.zst", c.Trajectory)
		assert.Equal(Te, "modes", c.Viz.Dir)
		assert.Equal(Te, 10, c.Viz.Frames)
	}
	//values not in the file keep their defaults
	c, err := Load(write(Te, "run.yml", yamlConfig))
	require.NoError(Te, err)
	assert.Equal(Te, "wigner", c.OutputDir)
	assert.True(Te, c.RemoveCOMVelocity)
	assert.Equal(Te, 40.0, c.Viz.Dx)
}

func TestLoadErrors(Te *testing.T) {
	_, err := Load(filepath.Join(Te.TempDir(), "missing.yaml"))
	assert.Error(Te, err)
	_, err = Load(write(Te, "bad.yaml", "samples: [1"))
	assert.Error(Te, err)
	_, err = Load(write(Te, "nohess.toml", "samples = 3"))
	assert.ErrorContains(Te, err, "Hessian")
}

func TestCheck(Te *testing.T) {
	c := Default()
	assert.Error(Te, c.Check())
	c.Hessian = "a.hess"
	require.NoError(Te, c.Check())
	bad := []func(*Config){
		func(c *Config) { c.Samples = 0 },
		func(c *Config) { c.Temperature = -1 },
		func(c *Config) { c.Workers = -2 },
		func(c *Config) { c.OutputDir = "" },
		func(c *Config) { c.Viz.Dir = "v"; c.Viz.Frames = 0 },
	}
	for i, f := range bad {
		d := *c
		f(&d)
		assert.Error(Te, d.Check(), i)
	}
}
