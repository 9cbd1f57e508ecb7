// internal/domain/customer/raw.go
package customer

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// RawRecord mirrors the customers table as stored: nullable columns stay
// nullable and financial/geo values arrive as text, the way the legacy
// spreadsheet loads left them. Normalize is the only way out of this shape.
type RawRecord struct {
	UID            sql.NullString
	RegistrationID sql.NullString
	AccountNumber  sql.NullString
	Name           sql.NullString

	FieldTeam sql.NullString
	WorkGroup sql.NullString
	GroupCode sql.NullString
	Branch    sql.NullString

	Principle     sql.NullString
	Installment   sql.NullString
	BlueBookPrice sql.NullString
	Commission    sql.NullString

	CurrentBucket sql.NullString
	CycleDay      sql.NullString

	Brand        sql.NullString
	Model        sql.NullString
	LicensePlate sql.NullString
	EngineNumber sql.NullString

	Address   sql.NullString
	Latitude  sql.NullString
	Longitude sql.NullString

	WorkStatus sql.NullString
	Resus      sql.NullString

	LastVisitResult   sql.NullString
	AuthorizationDate sql.NullString
	Notes             sql.NullString

	PhoneNumbers pq.StringArray
	Documents    pq.StringArray
	Photos       pq.StringArray
	VoiceNotes   pq.StringArray

	CreatedBy sql.NullString
	CreatedAt sql.NullTime
	UpdatedAt sql.NullTime
}

// Normalize converts a raw row into the application shape. It is total:
// missing or unparsable fields fall back to type-safe defaults and a row is
// never rejected.
func (r *RawRecord) Normalize() Customer {
	return Customer{
		UID:            r.UID.String,
		RegistrationID: r.RegistrationID.String,
		AccountNumber:  r.AccountNumber.String,
		Name:           r.Name.String,

		FieldTeam: r.FieldTeam.String,
		WorkGroup: ParseWorkGroup(r.WorkGroup.String),
		GroupCode: r.GroupCode.String,
		Branch:    r.Branch.String,

		Principle:     toNumber(r.Principle),
		Installment:   toNumber(r.Installment),
		BlueBookPrice: toNumber(r.BlueBookPrice),
		Commission:    toNumber(r.Commission),

		CurrentBucket: r.CurrentBucket.String,
		CycleDay:      r.CycleDay.String,

		Brand:        r.Brand.String,
		Model:        r.Model.String,
		LicensePlate: r.LicensePlate.String,
		EngineNumber: r.EngineNumber.String,

		Address:   r.Address.String,
		Latitude:  toNumber(r.Latitude),
		Longitude: toNumber(r.Longitude),

		WorkStatus: ParseWorkStatus(r.WorkStatus.String),
		Resus:      ParseResus(r.Resus.String),

		LastVisitResult:   r.LastVisitResult.String,
		AuthorizationDate: r.AuthorizationDate.String,
		Notes:             r.Notes.String,

		PhoneNumbers: toList(r.PhoneNumbers),
		Documents:    toList(r.Documents),
		Photos:       toList(r.Photos),
		VoiceNotes:   toList(r.VoiceNotes),

		CreatedBy: r.CreatedBy.String,
		CreatedAt: toTime(r.CreatedAt),
		UpdatedAt: toTime(r.UpdatedAt),
	}
}

// NormalizeAll maps rows in order, preserving the fetch ordering.
func NormalizeAll(rows []RawRecord) []Customer {
	out := make([]Customer, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Normalize())
	}
	return out
}

func toNumber(v sql.NullString) float64 {
	if !v.Valid {
		return 0
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v.String), 64)
	if err != nil {
		return 0
	}
	return n
}

func toList(v pq.StringArray) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func toTime(v sql.NullTime) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return v.Time
}
