package excel

import (
	"bytes"
	"testing"

	"tedtam-service/internal/domain/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportWritesHeadersAndRows(t *testing.T) {
	list := []customer.Customer{
		{
			Name: "สมชาย ใจดี", AccountNumber: "AC-001", Branch: "กรุงเทพ",
			WorkGroup: customer.WorkGroupNPL, WorkStatus: customer.WorkStatusClosed,
			Resus: customer.ResusCured, Principle: 150000,
			PhoneNumbers: []string{"0812345678", "029876543"},
		},
	}

	data, err := Export(list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Customers")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Headers, rows[0][:len(Headers)])
	assert.Equal(t, "สมชาย ใจดี", rows[1][0])
	assert.Equal(t, "AC-001", rows[1][1])
	assert.Equal(t, "NPL", rows[1][3])
	assert.Equal(t, "0812345678, 029876543", rows[1][24])
}

func TestExportImportRoundTrip(t *testing.T) {
	list := []customer.Customer{
		{
			Name: "สมหญิง ขยัน", AccountNumber: "AC-002", RegistrationID: "REG002",
			Branch: "เชียงใหม่", FieldTeam: "ทีม 2", WorkGroup: customer.WorkGroup6090,
			WorkStatus: customer.WorkStatusAppointment, Resus: customer.ResusDR,
			Principle: 250000, Installment: 7500, Commission: 5000,
			Latitude: 18.7883, Longitude: 98.9853,
			PhoneNumbers: []string{"0899998888"},
			Notes:        "นัดพบวันศุกร์",
		},
	}

	data, err := Export(list)
	require.NoError(t, err)

	reqs, err := Import(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	got := reqs[0]
	assert.Equal(t, "สมหญิง ขยัน", got.Name)
	assert.Equal(t, "AC-002", got.AccountNumber)
	assert.Equal(t, "6090", got.WorkGroup)
	assert.Equal(t, string(customer.WorkStatusAppointment), got.WorkStatus)
	assert.Equal(t, string(customer.ResusDR), got.Resus)
	assert.InDelta(t, 250000.0, got.Principle, 1e-6)
	assert.InDelta(t, 18.7883, got.Latitude, 1e-6)
	assert.Equal(t, []string{"0899998888"}, got.PhoneNumbers)
	assert.Equal(t, "นัดพบวันศุกร์", got.Notes)
}

func TestImportDefaultsBadCells(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{
		"ชื่อ-นามสกุล", "เลขที่สัญญา", "กลุ่มงาน", "เงินต้น", "สถานะงาน", "สถานะ RESUS",
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{
		"ทดสอบ", "AC-003", "ไม่ใช่กลุ่ม", "ตัวหนังสือ", "สถานะแปลก", "???",
	}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reqs, err := Import(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	got := reqs[0]
	assert.Equal(t, string(customer.DefaultWorkGroup), got.WorkGroup)
	assert.Equal(t, string(customer.DefaultWorkStatus), got.WorkStatus)
	assert.Equal(t, string(customer.DefaultResus), got.Resus)
	assert.Zero(t, got.Principle)
}

func TestImportSkipsEmptyRowsAndHandlesReordering(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	// Columns deliberately out of export order.
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{
		"เลขที่สัญญา", "ชื่อ-นามสกุล", "เงินต้น",
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{
		"AC-004", "คนแรก", "1,250,000",
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"", "  ", ""}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{
		"AC-005", "คนที่สอง", "80000",
	}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reqs, err := Import(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, reqs, 2, "blank rows are skipped")

	assert.Equal(t, "คนแรก", reqs[0].Name)
	assert.InDelta(t, 1250000.0, reqs[0].Principle, 1e-6, "thousands separators are stripped")
	assert.Equal(t, "AC-005", reqs[1].AccountNumber)
}

func TestImportHeaderOnly(t *testing.T) {
	data, err := Export(nil)
	require.NoError(t, err)

	reqs, err := Import(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestTemplateHasOneExampleRow(t *testing.T) {
	data, err := Template()
	require.NoError(t, err)

	reqs, err := Import(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "ตัวอย่าง ลูกค้า", reqs[0].Name)
	assert.Equal(t, "1234567890", reqs[0].AccountNumber)
}

func TestSplitPhones(t *testing.T) {
	assert.Empty(t, splitPhones(""))
	assert.Equal(t, []string{"081", "082"}, splitPhones(" 081 , 082 ,"))
}
