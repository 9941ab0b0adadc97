/*
 * config.go, part of govib.
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

// Package config holds the parameters of a govib run, read from a YAML or TOML file.
package config

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Viz controls the files written to visualize the normal modes.
type Viz struct {
	// Dir is where the frames are written. No frames are written if empty.
	Dir string `yaml:"dir" toml:"dir"`

	// Dx scales the displacement along each mode.
	Dx float64 `yaml:"dx" toml:"dx"`

	// Frames is the number of frames per mode.
	Frames int `yaml:"frames" toml:"frames"`
}

// Config contains the parameters of a run. It can be obtained with Load or Default,
// or built by hand, in which case the Check method should be used before using it.
type Config struct {
	// Hessian is the binary file with the geometry and the Hessian.
	Hessian string `yaml:"hessian" toml:"hessian"`

	// Temperature in K. 0 samples the ground vibrational state.
	Temperature float64 `yaml:"temperature" toml:"temperature"`

	// Samples is the number of phase space points to draw.
	Samples int `yaml:"samples" toml:"samples"`

	// OutputDir is the directory for the per-sample files.
	OutputDir string `yaml:"output_dir" toml:"output_dir"`

	// Symbols replace the atomic symbols derived from the Hessian file, if given.
	Symbols []string `yaml:"symbols" toml:"symbols"`

	// Masses override the mass of an element, in the form "H-2.014" (amu).
	Masses []string `yaml:"masses" toml:"masses"`

	// Seed for the random numbers. 0 can't be requested as a seed: it means a seed
	// taken from the clock, which is written to the report.
	Seed uint64 `yaml:"seed" toml:"seed"`

	// Workers is the number of concurrent samplers. 0 means one per CPU.
	Workers int `yaml:"workers" toml:"workers"`

	// RemoveCOMVelocity removes the velocity of the center of mass from each sample.
	RemoveCOMVelocity bool `yaml:"remove_com_velocity" toml:"remove_com_velocity"`

	// Trajectory, if not empty, is a multi-XYZ file with all the sampled geometries.
	// It is compressed according to its extension.
	Trajectory string `yaml:"trajectory" toml:"trajectory"`

	// Database, if not empty, is a SQLite file where the samples are stored.
	Database string `yaml:"database" toml:"database"`

	// Plot, if not empty, is an image file with the histograms of the sample energies.
	Plot string `yaml:"plot" toml:"plot"`

	Viz Viz `yaml:"viz" toml:"viz"`
}

// Default returns a Config with the default values. The Hessian
// file still has to be set.
func Default() *Config {
	return &Config{
		Temperature:       0,
		Samples:           1,
		OutputDir:         "wigner",
		RemoveCOMVelocity: true,
		Viz: Viz{
			Dx:     40.0,
			Frames: 20,
		},
	}
}

// Load decodes the configuration file in path on top of the default values,
// and checks the result. Files with the .toml extension are decoded as TOML,
// all others as YAML.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := Default()
	r := bufio.NewReader(f)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.NewDecoder(r).Decode(c)
	default:
		err = yaml.NewDecoder(r).Decode(c)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if err = c.Check(); err != nil {
		return nil, fmt.Errorf("Check: %w", err)
	}
	return c, nil
}

// Check returns an error if a field of the Config doesn't meet the requirements.
func (c *Config) Check() error {
	if c.Hessian == "" {
		return fmt.Errorf("no Hessian file given")
	}

	if c.Samples < 1 {
		return fmt.Errorf("Samples must be at least 1, not %d", c.Samples)
	}

	if c.Temperature < 0 || math.IsNaN(c.Temperature) || math.IsInf(c.Temperature, 0) {
		return fmt.Errorf("Temperature must be a finite number, greater or equal to 0, not %v", c.Temperature)
	}

	if c.Workers < 0 {
		return fmt.Errorf("Workers cannot be lower than 0")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("no output directory given")
	}

	if c.Viz.Dir != "" && c.Viz.Frames < 1 {
		return fmt.Errorf("Viz.Frames must be at least 1, not %d", c.Viz.Frames)
	}

	return nil
}
