// Package staff manages clinic staff accounts: the user record schema, the
// role enumeration, and the REST handlers for the /api/users resource.
package staff

import (
	"time"

	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
)

// Role is a staff member's function in the clinic.
type Role string

const (
	RoleAdmin            Role = "Admin"
	RoleManager          Role = "Manager"
	RoleDoctor           Role = "Doctor"
	RoleReceptionist     Role = "Receptionist"
	RoleAccountant       Role = "Accountant"
	RoleInventoryManager Role = "InventoryManager"
	RolePatient          Role = "Patient"
)

// AllModules lists every UI module key a user's permissions can reference.
var AllModules = []string{
	"dashboard", "appointments", "patients", "staff", "services",
	"invoices", "inventory", "reports", "settings",
}

// User is a staff account. PasswordHash is the stored password digest and is
// stripped from every API response.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"password_hash,omitempty"`
	FullName     string   `json:"full_name"`
	Role         Role     `json:"role"`
	Phone        string   `json:"phone,omitempty"`
	Permissions  []string `json:"permissions"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func (u *User) RecordID() string      { return u.ID }
func (u *User) SetRecordID(id string) { u.ID = id }

// Sanitized returns a copy safe to return to clients: the password digest is
// cleared and permissions default to an empty list when absent.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	if u.Permissions == nil {
		u.Permissions = []string{}
	}
	return u
}

// seedDigest is sha256("mypassword") in hex, shared by every seed account.
const seedDigest = "89e01536ac207279409d4de1e5253e01f4a1769e696db0d6062ca9b8f56767c8"

// Definition declares the user entity kind with its starting dataset.
func Definition() entity.Definition[User] {
	now := time.Now().UTC().Format(time.RFC3339)
	return entity.Definition[User]{
		Name:      "user",
		IndexName: "users",
		Seed: []User{
			{
				ID:           "user-admin-01",
				Username:     "admin",
				Email:        "admin@example.com",
				PasswordHash: seedDigest,
				FullName:     "Dr. Admin",
				Role:         RoleAdmin,
				Phone:        "03001234567",
				Permissions:  AllModules,
				CreatedAt:    now,
				UpdatedAt:    now,
			},
			{
				ID:           "user-admin-02",
				Username:     "superadmin",
				Email:        "superadmin@example.com",
				PasswordHash: seedDigest,
				FullName:     "Super Admin",
				Role:         RoleAdmin,
				Phone:        "03000000000",
				Permissions:  AllModules,
				CreatedAt:    now,
				UpdatedAt:    now,
			},
			{
				ID:           "user-doctor-01",
				Username:     "dr_aisha",
				Email:        "aisha@clinic.test",
				PasswordHash: seedDigest,
				FullName:     "Dr. Aisha Khan",
				Role:         RoleDoctor,
				Phone:        "03017654321",
				Permissions:  []string{"dashboard", "appointments", "patients"},
				CreatedAt:    now,
				UpdatedAt:    now,
			},
			{
				ID:           "user-reception-01",
				Username:     "reception_ali",
				Email:        "ali@clinic.test",
				PasswordHash: seedDigest,
				FullName:     "Ali Ahmed",
				Role:         RoleReceptionist,
				Phone:        "03021122334",
				Permissions:  []string{"dashboard", "appointments", "patients", "invoices"},
				CreatedAt:    now,
				UpdatedAt:    now,
			},
		},
	}
}
