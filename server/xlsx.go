// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"errors"
	"fmt"

	"github.com/patrickascher/timetable/controller"
	"github.com/patrickascher/timetable/controller/context"
	"github.com/patrickascher/timetable/export"
)

// RenderXLSX is the render type of the table download.
const RenderXLSX = "xlsx"

const sheetKey = "sheet"

// Error messages.
var (
	ErrSheet = errors.New("server: no sheet to render")
)

func init() {
	_ = context.RegisterRenderer(RenderXLSX, xlsxRenderer{})
}

// xlsxRenderer writes the sheet value as workbook download.
type xlsxRenderer struct{}

func (xlsxRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Write renders the sheet value as xlsx attachment.
func (xlsxRenderer) Write(r *context.Response) error {
	sheet, ok := r.Value(sheetKey).(export.Sheet)
	if !ok {
		return ErrSheet
	}
	r.Writer().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sheet.Name+".xlsx"))
	r.WriteStatus()
	return export.Write(r.Writer(), []export.Sheet{sheet})
}

// Error is rendered as json.
func (xlsxRenderer) Error(r *context.Response, code int, err error) error {
	return r.Error(code, err, controller.RenderJSON)
}
