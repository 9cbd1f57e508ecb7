package customer

import (
	"testing"

	"tedtam-service/internal/domain/customer"

	"github.com/stretchr/testify/assert"
)

func TestFromCreateRequestDefaults(t *testing.T) {
	s := &CustomerService{}

	got := s.fromCreateRequest(&customer.CreateCustomerRequest{
		AccountNumber: "AC-001",
		Name:          "สมชาย ใจดี",
	})

	assert.Equal(t, customer.DefaultWorkGroup, got.WorkGroup)
	assert.Equal(t, customer.DefaultWorkStatus, got.WorkStatus)
	assert.Equal(t, customer.DefaultResus, got.Resus)
	assert.NotNil(t, got.PhoneNumbers)
	assert.Empty(t, got.PhoneNumbers)
	assert.NotNil(t, got.Documents)
	assert.NotNil(t, got.Photos)
	assert.NotNil(t, got.VoiceNotes)
}

func TestFromCreateRequestKeepsKnownEnums(t *testing.T) {
	s := &CustomerService{}

	got := s.fromCreateRequest(&customer.CreateCustomerRequest{
		AccountNumber: "AC-002",
		Name:          "สมหญิง",
		WorkGroup:     "NPL",
		WorkStatus:    "นัดหมาย",
		Resus:         "DR",
		PhoneNumbers:  []string{"0812345678"},
	})

	assert.Equal(t, customer.WorkGroupNPL, got.WorkGroup)
	assert.Equal(t, customer.WorkStatusAppointment, got.WorkStatus)
	assert.Equal(t, customer.ResusDR, got.Resus)
	assert.Equal(t, []string{"0812345678"}, got.PhoneNumbers)
}

func TestApplyUpdatePartial(t *testing.T) {
	c := &customer.Customer{
		UID:        "01X",
		Name:       "เดิม",
		Branch:     "กรุงเทพ",
		Principle:  100000,
		WorkStatus: customer.WorkStatusFieldVisit,
	}

	name := "ใหม่"
	principle := 95000.0
	applyUpdate(c, &customer.UpdateCustomerRequest{
		Name:      &name,
		Principle: &principle,
	})

	assert.Equal(t, "ใหม่", c.Name)
	assert.InDelta(t, 95000.0, c.Principle, 1e-9)
	// Untouched fields survive.
	assert.Equal(t, "กรุงเทพ", c.Branch)
	assert.Equal(t, customer.WorkStatusFieldVisit, c.WorkStatus)
}

func TestApplyUpdateNormalizesEnums(t *testing.T) {
	c := &customer.Customer{WorkStatus: customer.WorkStatusFieldVisit}

	bogus := "ไม่มีสถานะนี้"
	applyUpdate(c, &customer.UpdateCustomerRequest{WorkStatus: &bogus})

	assert.Equal(t, customer.DefaultWorkStatus, c.WorkStatus)
}

func TestApplyUpdateReplacesLists(t *testing.T) {
	c := &customer.Customer{PhoneNumbers: []string{"081"}}

	applyUpdate(c, &customer.UpdateCustomerRequest{PhoneNumbers: []string{"082", "083"}})
	assert.Equal(t, []string{"082", "083"}, c.PhoneNumbers)

	// A nil list in the request leaves the stored list alone.
	applyUpdate(c, &customer.UpdateCustomerRequest{})
	assert.Equal(t, []string{"082", "083"}, c.PhoneNumbers)
}
