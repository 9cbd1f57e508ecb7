// internal/domain/customer/dto.go
package customer

type CreateCustomerRequest struct {
	RegistrationID string `json:"registration_id" binding:"max=64"`
	AccountNumber  string `json:"account_number" binding:"required,max=64"`
	Name           string `json:"name" binding:"required,max=255"`

	FieldTeam string `json:"field_team" binding:"max=64"`
	WorkGroup string `json:"work_group" binding:"omitempty,oneof=6090 NPL"`
	GroupCode string `json:"group_code" binding:"max=32"`
	Branch    string `json:"branch" binding:"max=128"`

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

	WorkStatus string `json:"work_status"`
	Resus      string `json:"resus"`

	LastVisitResult   string `json:"last_visit_result"`
	AuthorizationDate string `json:"authorization_date"`
	Notes             string `json:"notes"`

	PhoneNumbers []string `json:"phone_numbers"`
	Documents    []string `json:"documents"`
	Photos       []string `json:"photos"`
	VoiceNotes   []string `json:"voice_notes"`
}

type UpdateCustomerRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=255"`
	FieldTeam *string `json:"field_team" binding:"omitempty,max=64"`
	WorkGroup *string `json:"work_group" binding:"omitempty,oneof=6090 NPL"`
	GroupCode *string `json:"group_code"`
	Branch    *string `json:"branch"`

	Principle     *float64 `json:"principle"`
	Installment   *float64 `json:"installment"`
	BlueBookPrice *float64 `json:"blue_book_price"`
	Commission    *float64 `json:"commission"`

	CurrentBucket *string `json:"current_bucket"`
	CycleDay      *string `json:"cycle_day"`

	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	LicensePlate *string `json:"license_plate"`
	EngineNumber *string `json:"engine_number"`

	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	WorkStatus *string `json:"work_status"`
	Resus      *string `json:"resus"`

	LastVisitResult   *string `json:"last_visit_result"`
	AuthorizationDate *string `json:"authorization_date"`
	Notes             *string `json:"notes"`

	PhoneNumbers []string `json:"phone_numbers"`
	Documents    []string `json:"documents"`
	Photos       []string `json:"photos"`
	VoiceNotes   []string `json:"voice_notes"`
}

type ListFilters struct {
	Branch     string `form:"branch"`
	FieldTeam  string `form:"field_team"`
	WorkGroup  string `form:"work_group" binding:"omitempty,oneof=6090 NPL"`
	WorkStatus string `form:"work_status"`
	Resus      string `form:"resus"`
	Search     string `form:"search"` // name, account number, license plate
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}

type ListResponse struct {
	Customers  []Customer `json:"customers"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// ChangeKind is the event type carried on the customers change feed.
type ChangeKind string

const (
	ChangeInsert ChangeKind = "INSERT"
	ChangeUpdate ChangeKind = "UPDATE"
	ChangeDelete ChangeKind = "DELETE"
)

// ChangeEvent is one notification on the customers change feed. Consumers do
// not merge deltas; every event triggers a full refetch.
type ChangeEvent struct {
	Kind ChangeKind `json:"kind"`
	UID  string     `json:"uid"`
}
