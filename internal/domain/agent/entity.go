// internal/domain/agent/entity.go
package agent

import "time"

// Agent is one field-collection agent account. Its ID is the owner identity
// recorded on customer rows (created_by).
type Agent struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	FieldTeam    string    `json:"field_team"`
	CreatedAt    time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Agent *Agent `json:"agent"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FullName  string `json:"full_name" binding:"required,max=255"`
	FieldTeam string `json:"field_team" binding:"max=64"`
}
