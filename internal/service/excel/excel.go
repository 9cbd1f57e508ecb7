// internal/service/excel/excel.go
//
// Spreadsheet import/export for customer cases. The Thai column headers are a
// compatibility contract with the spreadsheets already in the field; do not
// rename them.
package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"tedtam-service/internal/domain/customer"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Customers"

// Headers is the export/import column order.
var Headers = []string{
	"ชื่อ-นามสกุล",
	"เลขที่สัญญา",
	"Registration ID",
	"กลุ่มงาน",
	"รหัสกลุ่ม",
	"สาขา",
	"ทีมงาน",
	"เงินต้น",
	"ค่างวด",
	"Bucket ปัจจุบัน",
	"วันไซเคิล",
	"ราคาตำรา",
	"ค่าคอมมิชชั่น",
	"ยี่ห้อรถ",
	"รุ่นรถ",
	"ทะเบียนรถ",
	"หมายเลขเครื่องยนต์",
	"ที่อยู่",
	"ละติจูด",
	"ลองจิจูด",
	"สถานะงาน",
	"สถานะ RESUS",
	"ผลการเยี่ยมล่าสุด",
	"วันที่อนุมัติ",
	"เบอร์โทรศัพท์",
	"หมายเหตุ",
}

var columnWidths = []float64{
	20, 15, 15, 10, 12, 15, 12, 12, 10, 15,
	10, 12, 12, 12, 12, 12, 15, 30, 12, 12,
	12, 12, 20, 12, 15, 20,
}

// Export renders the customer list as an xlsx workbook.
func Export(customers []customer.Customer) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	if err := writeHeader(f); err != nil {
		f.Close()
		return nil, err
	}

	for i := range customers {
		if err := writeRow(f, i+2, &customers[i]); err != nil {
			f.Close()
			return nil, err
		}
	}

	return finish(f)
}

// Template produces an import template with one example row.
func Template() ([]byte, error) {
	example := customer.Customer{
		Name:              "ตัวอย่าง ลูกค้า",
		AccountNumber:     "1234567890",
		RegistrationID:    "REG001",
		WorkGroup:         customer.WorkGroup6090,
		GroupCode:         "G1",
		Branch:            "สาขาสุขุมวิท",
		FieldTeam:         "ทีม A",
		Principle:         100000,
		Installment:       5000,
		CurrentBucket:     "B1",
		CycleDay:          "15",
		BlueBookPrice:     800000,
		Commission:        5000,
		Brand:             "Toyota",
		Model:             "Camry",
		LicensePlate:      "1กท1234",
		EngineNumber:      "ABC123456",
		Address:           "123 ถ.สุขุมวิท กรุงเทพฯ 10110",
		Latitude:          13.7563,
		Longitude:         100.5018,
		WorkStatus:        customer.WorkStatusFieldVisit,
		Resus:             customer.ResusCured,
		LastVisitResult:   "พบลูกค้า นัดชำระ",
		AuthorizationDate: "2025-05-05",
		PhoneNumbers:      []string{"081-234-5678", "089-876-5432"},
		Notes:             "ลูกค้าให้ความร่วมมือดี",
	}
	return Export([]customer.Customer{example})
}

// Import parses an uploaded workbook into create requests, applying the same
// defaulting as row normalization: bad cells degrade to defaults, a row is
// skipped only when it is entirely empty.
func Import(r io.Reader) ([]customer.CreateCustomerRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return []customer.CreateCustomerRequest{}, nil
	}

	// Column positions come from the header row, so column reordering in the
	// field does not break imports.
	colIdx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		colIdx[strings.TrimSpace(h)] = i
	}

	reqs := []customer.CreateCustomerRequest{}
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		cell := func(header string) string {
			i, ok := colIdx[header]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		reqs = append(reqs, customer.CreateCustomerRequest{
			Name:              cell("ชื่อ-นามสกุล"),
			AccountNumber:     cell("เลขที่สัญญา"),
			RegistrationID:    cell("Registration ID"),
			WorkGroup:         string(customer.ParseWorkGroup(cell("กลุ่มงาน"))),
			GroupCode:         cell("รหัสกลุ่ม"),
			Branch:            cell("สาขา"),
			FieldTeam:         cell("ทีมงาน"),
			Principle:         toNumber(cell("เงินต้น")),
			Installment:       toNumber(cell("ค่างวด")),
			CurrentBucket:     cell("Bucket ปัจจุบัน"),
			CycleDay:          cell("วันไซเคิล"),
			BlueBookPrice:     toNumber(cell("ราคาตำรา")),
			Commission:        toNumber(cell("ค่าคอมมิชชั่น")),
			Brand:             cell("ยี่ห้อรถ"),
			Model:             cell("รุ่นรถ"),
			LicensePlate:      cell("ทะเบียนรถ"),
			EngineNumber:      cell("หมายเลขเครื่องยนต์"),
			Address:           cell("ที่อยู่"),
			Latitude:          toNumber(cell("ละติจูด")),
			Longitude:         toNumber(cell("ลองจิจูด")),
			WorkStatus:        string(customer.ParseWorkStatus(cell("สถานะงาน"))),
			Resus:             string(customer.ParseResus(cell("สถานะ RESUS"))),
			LastVisitResult:   cell("ผลการเยี่ยมล่าสุด"),
			AuthorizationDate: cell("วันที่อนุมัติ"),
			PhoneNumbers:      splitPhones(cell("เบอร์โทรศัพท์")),
			Notes:             cell("หมายเหตุ"),
		})
	}
	return reqs, nil
}

func writeHeader(f *excelize.File) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if col < len(columnWidths) {
			if err := f.SetColWidth(sheetName, name, name, columnWidths[col]); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}
	return nil
}

func writeRow(f *excelize.File, row int, c *customer.Customer) error {
	values := []interface{}{
		c.Name, c.AccountNumber, c.RegistrationID, string(c.WorkGroup), c.GroupCode,
		c.Branch, c.FieldTeam, c.Principle, c.Installment, c.CurrentBucket,
		c.CycleDay, c.BlueBookPrice, c.Commission, c.Brand, c.Model,
		c.LicensePlate, c.EngineNumber, c.Address, c.Latitude, c.Longitude,
		string(c.WorkStatus), string(c.Resus), c.LastVisitResult, c.AuthorizationDate,
		strings.Join(c.PhoneNumbers, ", "), c.Notes,
	}
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}

func finish(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func toNumber(s string) float64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return n
}

func splitPhones(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	phones := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			phones = append(phones, p)
		}
	}
	return phones
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
