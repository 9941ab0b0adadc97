/*
 * multi.go, part of govib.
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

package sink

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/rmera/govib/wigner"
)

// Remover is a sink that can take back a sample it already stored.
type Remover interface {
	Remove(i int) error
}

// Multi sends each sample to all of its sinks.
type Multi []wigner.Sink

// Put gives sample s to every sink. If any of them fails, the sample is removed
// from the sinks that did store it and implement Remover, so no sink keeps a
// sample that the ensemble counts as failed. The returned error collects all the failures.
func (M Multi) Put(i int, s *wigner.Sample) error {
	var result error
	stored := make([]wigner.Sink, 0, len(M))
	for _, v := range M {
		if err := v.Put(i, s); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		stored = append(stored, v)
	}
	if result == nil {
		return nil
	}
	for _, v := range stored {
		if r, ok := v.(Remover); ok {
			if err := r.Remove(i); err != nil {
				result = multierror.Append(result, fmt.Errorf("removing sample %d: %w", i, err))
			}
		}
	}
	return result
}

// Remove takes sample i back from all the sinks that implement Remover.
func (M Multi) Remove(i int) error {
	var result error
	for _, v := range M {
		if r, ok := v.(Remover); ok {
			if err := r.Remove(i); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}
	return result
}

// Close closes the sinks that implement io.Closer.
func (M Multi) Close() error {
	var result error
	for _, v := range M {
		if c, ok := v.(io.Closer); ok {
			if err := c.Close(); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}
	return result
}
