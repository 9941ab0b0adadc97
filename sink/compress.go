/*
 * compress.go, part of govib.
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
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const lzwLitwidth = 8

// Compression is the format used to compress a file, decided from its extension.
type Compression int

const (
	None Compression = iota
	Zstd
	Gzip
	Flate
	LZW
)

// CompressionFor returns the compression that corresponds to the extension
// of the file name: .zst for zstd, .gz for gzip, .z or .zz for flate, .lzw for lzw.
// Any other extension means no compression.
func CompressionFor(name string) Compression {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".zstd":
		return Zstd
	case ".gz":
		return Gzip
	case ".z", ".zz":
		return Flate
	case ".lzw":
		return LZW
	default:
		return None
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewCompressor returns a writer that compresses into w with the format c. Closing
// the returned writer flushes it but doesn't close w.
func NewCompressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case Gzip:
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	case Flate:
		return flate.NewWriter(w, flate.BestCompression)
	case LZW:
		return lzw.NewWriter(w, lzw.MSB, lzwLitwidth), nil
	default:
		return nopWriteCloser{w}, nil
	}
}

//*zstd.Decoder doesn't implement io.ReadCloser, its Close
//method returns nothing.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// NewDecompressor returns a reader that decompresses the data in r, which is in the format c.
func NewDecompressor(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdReadCloser{d}, nil
	case Gzip:
		return gzip.NewReader(r)
	case Flate:
		return flate.NewReader(r), nil
	case LZW:
		return lzw.NewReader(r, lzw.MSB, lzwLitwidth), nil
	default:
		return io.NopCloser(r), nil
	}
}
