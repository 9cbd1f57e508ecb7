// internal/domain/customer/entity.go
package customer

import "time"

// WorkGroup is the portfolio a case belongs to.
type WorkGroup string

const (
	WorkGroup6090 WorkGroup = "6090"
	WorkGroupNPL  WorkGroup = "NPL"
)

// WorkStatus is the field-operations lifecycle stage of a case.
type WorkStatus string

const (
	WorkStatusFieldVisit  WorkStatus = "ลงพื้นที่"
	WorkStatusAppointment WorkStatus = "นัดหมาย"
	WorkStatusUnresolved  WorkStatus = "ไม่จบ"
	WorkStatusClosed      WorkStatus = "จบ"
)

// Resus is the resolution outcome of a case, distinct from its work status.
type Resus string

const (
	ResusClosed Resus = "จบ"
	ResusCured  Resus = "CURED"
	ResusDR     Resus = "DR"
	ResusBounce Resus = "ตบเด้ง"
	ResusRepo   Resus = "REPO"
)

// Defaults applied when a stored value is absent or outside its enumeration.
const (
	DefaultWorkGroup  = WorkGroup6090
	DefaultWorkStatus = WorkStatusFieldVisit
	DefaultResus      = ResusCured
)

// Customer is one repossession/collection case. Every field is always
// populated: numerics default to 0, strings to "", enums to their defaults.
type Customer struct {
	UID            string `json:"uid"`
	RegistrationID string `json:"registration_id"`
	AccountNumber  string `json:"account_number"`
	Name           string `json:"name"`

	FieldTeam string    `json:"field_team"`
	WorkGroup WorkGroup `json:"work_group"`
	GroupCode string    `json:"group_code"`
	Branch    string    `json:"branch"`

	Principle     float64 `json:"principle"`
	Installment   float64 `json:"installment"`
	BlueBookPrice float64 `json:"blue_book_price"`
	Commission    float64 `json:"commission"`

	CurrentBucket string `json:"current_bucket"`
	CycleDay      string `json:"cycle_day"`

	Brand        string `json:"brand"`
	Model        string `json:"model"`
	LicensePlate string `json:"license_plate"`
	EngineNumber string `json:"engine_number"`

	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	WorkStatus WorkStatus `json:"work_status"`
	Resus      Resus      `json:"resus"`

	LastVisitResult   string `json:"last_visit_result"`
	AuthorizationDate string `json:"authorization_date"`
	Notes             string `json:"notes"`

	PhoneNumbers []string `json:"phone_numbers"`
	Documents    []string `json:"documents"`
	Photos       []string `json:"photos"`
	VoiceNotes   []string `json:"voice_notes"`

	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasLocation reports whether the case carries usable coordinates.
// Zero means "no location recorded".
func (c *Customer) HasLocation() bool {
	return c.Latitude != 0 && c.Longitude != 0
}

// PrimaryPhone returns the first phone number, or "" when none is recorded.
func (c *Customer) PrimaryPhone() string {
	if len(c.PhoneNumbers) == 0 {
		return ""
	}
	return c.PhoneNumbers[0]
}

// ParseWorkGroup maps a stored value onto the enumeration, falling back to
// the default when the value is absent or unknown.
func ParseWorkGroup(s string) WorkGroup {
	switch WorkGroup(s) {
	case WorkGroup6090, WorkGroupNPL:
		return WorkGroup(s)
	}
	return DefaultWorkGroup
}

// ParseWorkStatus maps a stored value onto the enumeration with fallback.
func ParseWorkStatus(s string) WorkStatus {
	switch WorkStatus(s) {
	case WorkStatusFieldVisit, WorkStatusAppointment, WorkStatusUnresolved, WorkStatusClosed:
		return WorkStatus(s)
	}
	return DefaultWorkStatus
}

// ParseResus maps a stored value onto the enumeration with fallback.
func ParseResus(s string) Resus {
	switch Resus(s) {
	case ResusClosed, ResusCured, ResusDR, ResusBounce, ResusRepo:
		return Resus(s)
	}
	return DefaultResus
}
