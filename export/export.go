// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package export writes tables as excel workbooks.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// ContentType of the xlsx files.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet; charset=utf-8"

// MaxSheetName is the maximum number of characters of a sheet name.
const MaxSheetName = 31

// sheetNameReplacer replaces the characters excel does not allow in a sheet name.
var sheetNameReplacer = strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_")

// Error messages.
var (
	ErrNoSheets = errors.New("export: at least one sheet is mandatory")
)

// Sheet of a workbook.
// The header is written in the first row, every row below.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// SheetName returns the name as valid sheet name.
// Not allowed characters are replaced by _ and the name is cut after MaxSheetName characters.
func SheetName(name string) string {
	name = strings.Trim(sheetNameReplacer.Replace(name), "'")
	if utf8.RuneCountInString(name) > MaxSheetName {
		name = string([]rune(name)[:MaxSheetName])
	}
	return name
}

// Write the sheets as xlsx workbook. The first sheet replaces the default sheet.
// The sheet names are converted by SheetName.
func Write(w io.Writer, sheets []Sheet) error {
	if len(sheets) == 0 {
		return ErrNoSheets
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		sheet.Name = SheetName(sheet.Name)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("export: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("export: %w", err)
		}

		if err := writeSheet(f, sheet); err != nil {
			return fmt.Errorf("export: %s: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)

	_, err := f.WriteTo(w)
	return err
}

// WriteFile writes the workbook to the file. The directory is created if needed.
func WriteFile(name string, sheets []Sheet) error {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err = Write(file, sheets); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func writeSheet(f *excelize.File, sheet Sheet) error {
	header := make([]interface{}, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err = f.SetSheetRow(sheet.Name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
