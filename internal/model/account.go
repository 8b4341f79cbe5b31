package model

import (
	"github.com/google/uuid"
)

type AccountRole string

const (
	RolePatient   AccountRole = "patient"
	RoleClinician AccountRole = "clinician"
)

// ClinicianProfile carries the clinician-only attributes. It is present
// if and only if the account role is clinician.
type ClinicianProfile struct {
	LicenseNumber  string `db:"license_number" json:"license_number"`
	Specialization string `db:"specialization" json:"specialization"`
}

type Account struct {
	Base
	FirstName    string            `db:"first_name" json:"first_name"`
	LastName     string            `db:"last_name" json:"last_name"`
	Email        string            `db:"email" json:"email"`
	Password     string            `db:"-" json:"password,omitempty"`
	PasswordHash string            `db:"password_hash" json:"-"`
	Role         AccountRole       `db:"role" json:"role"`
	Clinician    *ClinicianProfile `db:"-" json:"clinician,omitempty"`
}

// IsClinician reports whether the account carries the clinician role.
func (a *Account) IsClinician() bool {
	return a.Role == RoleClinician
}

type RegisterAccountRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Role           string `json:"role" binding:"required,oneof=patient clinician"`
	LicenseNumber  string `json:"license_number"`
	Specialization string `json:"specialization"`
}

type UpdateAccountRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Password       *string `json:"password" binding:"omitempty,min=8"`
	LicenseNumber  *string `json:"license_number"`
	Specialization *string `json:"specialization"`
}

type AccountResponse struct {
	ID             uuid.UUID   `json:"id"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Email          string      `json:"email"`
	Role           AccountRole `json:"role"`
	LicenseNumber  string      `json:"license_number,omitempty"`
	Specialization string      `json:"specialization,omitempty"`
}

// ToResponse flattens the clinician profile into the API shape.
func (a *Account) ToResponse() *AccountResponse {
	resp := &AccountResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
	}
	if a.Clinician != nil {
		resp.LicenseNumber = a.Clinician.LicenseNumber
		resp.Specialization = a.Clinician.Specialization
	}
	return resp
}
