package customer

import (
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func ns(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func TestNormalizeDefaults(t *testing.T) {
	// A completely empty row still normalizes to safe defaults.
	var r RawRecord
	got := r.Normalize()

	assert.Equal(t, DefaultWorkGroup, got.WorkGroup)
	assert.Equal(t, DefaultWorkStatus, got.WorkStatus)
	assert.Equal(t, DefaultResus, got.Resus)
	assert.Zero(t, got.Principle)
	assert.Zero(t, got.Latitude)
	assert.Zero(t, got.Longitude)
	assert.NotNil(t, got.PhoneNumbers)
	assert.Empty(t, got.PhoneNumbers)
	assert.NotNil(t, got.Documents)
	assert.True(t, got.CreatedAt.IsZero())
}

func TestNormalizeCoercesNumericText(t *testing.T) {
	r := RawRecord{
		Principle:   ns(" 125000.50 "),
		Installment: ns("not-a-number"),
		Commission:  ns("3000"),
		Latitude:    ns("13.7563"),
		Longitude:   sql.NullString{}, // NULL column
	}
	got := r.Normalize()

	assert.InDelta(t, 125000.50, got.Principle, 1e-9)
	assert.Zero(t, got.Installment, "unparsable numbers fall back to 0")
	assert.InDelta(t, 3000.0, got.Commission, 1e-9)
	assert.InDelta(t, 13.7563, got.Latitude, 1e-9)
	assert.Zero(t, got.Longitude)
}

func TestNormalizeKeepsKnownEnums(t *testing.T) {
	r := RawRecord{
		WorkGroup:  ns("NPL"),
		WorkStatus: ns("จบ"),
		Resus:      ns("REPO"),
	}
	got := r.Normalize()

	assert.Equal(t, WorkGroupNPL, got.WorkGroup)
	assert.Equal(t, WorkStatusClosed, got.WorkStatus)
	assert.Equal(t, ResusRepo, got.Resus)
}

func TestNormalizeUnknownEnumFallsBack(t *testing.T) {
	r := RawRecord{
		WorkGroup:  ns("9999"),
		WorkStatus: ns("อะไรก็ไม่รู้"),
		Resus:      ns("GONE"),
	}
	got := r.Normalize()

	assert.Equal(t, DefaultWorkGroup, got.WorkGroup)
	assert.Equal(t, DefaultWorkStatus, got.WorkStatus)
	assert.Equal(t, DefaultResus, got.Resus)
}

func TestNormalizeCarriesListsAndTimes(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r := RawRecord{
		UID:          ns("01HXYZ"),
		Name:         ns("สมชาย ใจดี"),
		PhoneNumbers: pq.StringArray{"0812345678", "029876543"},
		CreatedAt:    sql.NullTime{Time: now, Valid: true},
	}
	got := r.Normalize()

	assert.Equal(t, "01HXYZ", got.UID)
	assert.Equal(t, []string{"0812345678", "029876543"}, got.PhoneNumbers)
	assert.Equal(t, now, got.CreatedAt)
	assert.Equal(t, "0812345678", got.PrimaryPhone())
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	rows := []RawRecord{
		{UID: ns("b")},
		{UID: ns("a")},
		{UID: ns("c")},
	}
	got := NormalizeAll(rows)

	assert.Len(t, got, 3)
	assert.Equal(t, "b", got[0].UID)
	assert.Equal(t, "a", got[1].UID)
	assert.Equal(t, "c", got[2].UID)
}

func TestHasLocation(t *testing.T) {
	assert.False(t, (&Customer{}).HasLocation())
	assert.True(t, (&Customer{Latitude: 13.75, Longitude: 100.5}).HasLocation())
}
