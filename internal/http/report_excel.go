package httpapi

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"safecam-data/internal/models"
	"safecam-data/internal/service"
)

// ReportExportHeader 报表导出表头
var ReportExportHeader = []string{
	"Period",
	"Total Events",
}

// GenerateReportExport 生成事件统计 Excel 文件
// rows 为空时只输出表头。
func GenerateReportExport(reportType string, rows []models.ReportRow) ([]byte, error) {
	f := excelize.NewFile()

	sheetName := "Monthly Report"
	if reportType == service.ReportTypeYearly {
		sheetName = "Yearly Report"
	}
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// 删除默认的 Sheet1
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for col, header := range ReportExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range rows {
		periodCell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to resolve cell: %w", err)
		}
		totalCell, err := excelize.CoordinatesToCellName(2, i+2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to resolve cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, periodCell, row.Period); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
		if err := f.SetCellValue(sheetName, totalCell, row.Total); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}

	return buf.Bytes(), nil
}
