package payroll

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Resumen"
	detailSheet  = "Detalle"
)

var summaryTotalsHeaders = []string{"Normales", "Nocturnas", "Festivas", "Extra 1", "Extra 2", "Total horas"}

var detailHeaders = []string{
	"Trabajador", "Fecha", "Día", "Tipo", "Festivo", "Ausencia",
	"Normales", "Nocturnas", "Festivas", "Extra 1", "Extra 2", "Total horas", "Importe",
}

func (s *MatrixServiceImpl) ExportXLSX(ctx context.Context, req payroll.MatrixRequest) ([]byte, error) {
	m, err := s.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	return RenderXLSX(m)
}

// RenderXLSX writes the matrix as a workbook: a worker x day summary sheet and a
// one-row-per-day detail sheet.
func RenderXLSX(m payroll.Matrix) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(detailSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeSummary(f, st, m); err != nil {
		return nil, err
	}
	if err := writeDetail(f, st, m); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type styles struct {
	header  int
	absence int
	off     int
	holiday int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	st.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return st, fmt.Errorf("header style: %w", err)
	}
	st.absence, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F8CBAD"}, Pattern: 1},
	})
	if err != nil {
		return st, fmt.Errorf("absence style: %w", err)
	}
	st.off, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "A6A6A6"},
	})
	if err != nil {
		return st, fmt.Errorf("off style: %w", err)
	}
	st.holiday, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFF2CC"}, Pattern: 1},
	})
	if err != nil {
		return st, fmt.Errorf("holiday style: %w", err)
	}
	return st, nil
}

func writeSummary(f *excelize.File, st styles, m payroll.Matrix) error {
	days := 0
	if len(m.Workers) > 0 {
		days = len(m.Workers[0].Days)
	}

	headers := []string{"Trabajador", "Contrato (h/sem)"}
	for d := 1; d <= days; d++ {
		headers = append(headers, strconv.Itoa(d))
	}
	headers = append(headers, summaryTotalsHeaders...)
	if m.WithAmounts {
		headers = append(headers, "Importe trabajo", "Importe ausencias", "Total")
	}

	for i, h := range headers {
		f.SetCellValue(summarySheet, cellName(i+1, 1), h)
	}
	if err := f.SetCellStyle(summarySheet, "A1", cellName(len(headers), 1), st.header); err != nil {
		return fmt.Errorf("style summary header: %w", err)
	}

	for r, w := range m.Workers {
		row := r + 2
		f.SetCellValue(summarySheet, cellName(1, row), w.WorkerName)
		f.SetCellValue(summarySheet, cellName(2, row), w.ContractedHours)

		for i, d := range w.Days {
			cell := cellName(3+i, row)
			switch d.Kind {
			case payroll.DayKindAbsence:
				code := "AUS"
				if d.Absence != nil && d.Absence.TypeCode != "" {
					code = d.Absence.TypeCode
				}
				f.SetCellValue(summarySheet, cell, code)
				f.SetCellStyle(summarySheet, cell, cell, st.absence)
			case payroll.DayKindWork:
				f.SetCellValue(summarySheet, cell, d.Hours.Total)
				if d.IsHoliday {
					f.SetCellStyle(summarySheet, cell, cell, st.holiday)
				}
			default:
				f.SetCellValue(summarySheet, cell, "L")
				f.SetCellStyle(summarySheet, cell, cell, st.off)
			}
		}

		col := 3 + days
		h := w.Summary.Hours
		for i, v := range []float64{h.Normal, h.Night, h.Holiday, h.Overtime1, h.Overtime2, h.Total} {
			f.SetCellValue(summarySheet, cellName(col+i, row), v)
		}
		if m.WithAmounts {
			col += len(summaryTotalsHeaders)
			f.SetCellValue(summarySheet, cellName(col, row), decimalValue(w.Summary.WorkAmount))
			f.SetCellValue(summarySheet, cellName(col+1, row), decimalValue(w.Summary.AbsenceAmount))
			f.SetCellValue(summarySheet, cellName(col+2, row), decimalValue(w.Summary.Total))
		}
	}

	f.SetPanes(summarySheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      2,
		YSplit:      1,
		TopLeftCell: "C2",
	})
	f.SetColWidth(summarySheet, "A", "A", 28)
	return nil
}

func writeDetail(f *excelize.File, st styles, m payroll.Matrix) error {
	for i, h := range detailHeaders {
		f.SetCellValue(detailSheet, cellName(i+1, 1), h)
	}
	if err := f.SetCellStyle(detailSheet, "A1", cellName(len(detailHeaders), 1), st.header); err != nil {
		return fmt.Errorf("style detail header: %w", err)
	}

	row := 2
	for _, w := range m.Workers {
		for _, d := range w.Days {
			absenceCode := ""
			if d.Absence != nil {
				absenceCode = d.Absence.TypeCode
			}
			values := []interface{}{
				w.WorkerName, d.Date, d.Weekday, string(d.Kind), d.IsHoliday, absenceCode,
				d.Hours.Normal, d.Hours.Night, d.Hours.Holiday, d.Hours.Overtime1, d.Hours.Overtime2, d.Hours.Total,
				decimalValue(d.Amount),
			}
			for i, v := range values {
				f.SetCellValue(detailSheet, cellName(i+1, row), v)
			}
			row++
		}
	}

	f.SetPanes(detailSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(detailSheet, "A", "A", 28)
	f.SetColWidth(detailSheet, "B", "F", 12)
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func decimalValue(d *decimal.Decimal) interface{} {
	if d == nil {
		return ""
	}
	v, _ := d.Float64()
	return v
}
