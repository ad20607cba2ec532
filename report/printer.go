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
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// Printer outputs the results of a run.
//
//go:generate mockgen -source printer.go -destination printer_mock.go -package report
type Printer interface {
	Print() error
	Close() error
}

type Printers struct {
	printers []Printer
}

func NewPrinters() *Printers {
	return &Printers{[]Printer{}}
}

func (ps *Printers) AddPrinter(p Printer) *Printers {
	ps.printers = append(ps.printers, p)
	return ps
}

// Print runs every printer, even when an earlier one failed.
func (ps *Printers) Print() error {
	var errs []error
	for _, p := range ps.printers {
		errs = append(errs, p.Print())
	}
	return errors.Join(errs...)
}

func (ps *Printers) Close() error {
	var errs []error
	for _, p := range ps.printers {
		errs = append(errs, p.Close())
	}
	return errors.Join(errs...)
}

// PrinterToWriter writes the string returned by f to any io.Writer.
type PrinterToWriter struct {
	w io.Writer
	f func() string
}

func (p *PrinterToWriter) Print() error {
	_, err := fmt.Fprintln(p.w, p.f())
	return err
}

func (p *PrinterToWriter) Close() error {
	return nil
}

func NewPrinterToWriter(w io.Writer, f func() string) *PrinterToWriter {
	return &PrinterToWriter{w, f}
}

func NewPrinterToConsole(f func() string) *PrinterToWriter {
	return &PrinterToWriter{os.Stdout, f}
}

func (ps *Printers) AddPrinterToWriter(w io.Writer, f func() string) *Printers {
	return ps.AddPrinter(NewPrinterToWriter(w, f))
}

func (ps *Printers) AddPrinterToConsole(isDisabled bool, f func() string) *Printers {
	if isDisabled {
		return ps
	}
	return ps.AddPrinter(NewPrinterToConsole(f))
}

// PrinterToArchive writes the record returned by f to a gzip compressed
// JSON file.
type PrinterToArchive struct {
	path string
	f    func() *Record
}

func (p *PrinterToArchive) Print() error {
	if err := WriteArchive(p.path, p.f()); err != nil {
		return errors.Wrapf(err, "unable to print to file %s", p.path)
	}
	return nil
}

func (p *PrinterToArchive) Close() error {
	return nil
}

func NewPrinterToArchive(path string, f func() *Record) *PrinterToArchive {
	return &PrinterToArchive{path, f}
}

func (ps *Printers) AddPrinterToArchive(path string, f func() *Record) *Printers {
	if path != "" {
		ps.AddPrinter(NewPrinterToArchive(path, f))
	}
	return ps
}

// PrinterToStore saves the record returned by f in a run store. Closing
// the printer closes the store.
type PrinterToStore struct {
	store *Store
	f     func() *Record
}

func (p *PrinterToStore) Print() error {
	return p.store.SaveRun(p.f())
}

func (p *PrinterToStore) Close() error {
	return p.store.Close()
}

func NewPrinterToStore(store *Store, f func() *Record) *PrinterToStore {
	return &PrinterToStore{store, f}
}

func (ps *Printers) AddPrinterToSqlite3(path string, f func() *Record) (*Printers, error) {
	if path == "" {
		return ps, nil
	}
	store, err := OpenStore(path)
	if err != nil {
		return ps, err
	}
	return ps.AddPrinter(NewPrinterToStore(store, f)), nil
}
