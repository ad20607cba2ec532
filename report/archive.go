// Copyright 2025 Sonic Labs
// This file is part of Suppress, an epidemic suppression model
//
// Suppress is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Suppress is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Suppress. If not, see <http://www.gnu.org/licenses/>.

package report

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
)

// WriteArchive writes the record as gzip compressed JSON. An existing file
// is not overwritten.
func WriteArchive(path string, r *Record) (err error) {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf("file %s already exists", path)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	gzipWriter := gzip.NewWriter(file)
	buffer := bufio.NewWriter(gzipWriter)
	defer func() {
		err = errors.Join(err, buffer.Flush(), gzipWriter.Close(), file.Close())
	}()
	return json.NewEncoder(buffer).Encode(r)
}

// ReadArchive reads a record written by WriteArchive.
func ReadArchive(path string) (*Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read archive %s", path)
	}
	defer gzipReader.Close()

	var r Record
	if err := json.NewDecoder(bufio.NewReader(gzipReader)).Decode(&r); err != nil {
		return nil, errors.Wrapf(err, "cannot decode archive %s", path)
	}
	return &r, nil
}
