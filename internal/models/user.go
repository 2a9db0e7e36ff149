package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

// User is the mirrored account document for a sign-in identity. The
// canonical role field is Roles; the legacy Role string and IsAdmin
// flag are still accepted on read and kept in sync on write.
type User struct {
	UID         string `json:"uid" gorm:"primaryKey;size:255"`
	Email       string `json:"email" gorm:"index;size:255"`
	DisplayName string `json:"displayName" gorm:"size:255"`
	PhoneNumber string `json:"phoneNumber" gorm:"size:50"`
	Disabled    bool   `json:"disabled"`

	Roles   datatypes.JSON `json:"roles" gorm:"type:jsonb"`
	Role    string         `json:"role" gorm:"size:50"`
	IsAdmin bool           `json:"isAdmin"`

	// Provider metadata, carried over from the identity provider.
	CreationTime   *time.Time `json:"creationTime"`
	LastSignInTime *time.Time `json:"lastSignInTime"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// RoleSet returns the canonical role list: the Roles array plus the
// legacy Role value plus "admin" when the legacy IsAdmin flag is set,
// deduplicated in first-seen order.
func (u *User) RoleSet() []string {
	var roles []string
	if len(u.Roles) > 0 {
		// Malformed role blobs degrade to the legacy fields
		_ = json.Unmarshal(u.Roles, &roles)
	}

	out := make([]string, 0, len(roles)+2)
	seen := make(map[string]bool, len(roles)+2)
	add := func(role string) {
		if role == "" || seen[role] {
			return
		}
		seen[role] = true
		out = append(out, role)
	}

	for _, r := range roles {
		add(r)
	}
	add(u.Role)
	if u.IsAdmin {
		add(string(RoleAdmin))
	}
	return out
}

// HasAdminRole reports whether any role field grants admin.
func (u *User) HasAdminRole() bool {
	for _, r := range u.RoleSet() {
		if r == string(RoleAdmin) {
			return true
		}
	}
	return false
}

// NormalizeRoles rewrites Roles from the canonical set and projects the
// legacy fields so older readers keep working.
func (u *User) NormalizeRoles() {
	roles := u.RoleSet()
	if len(roles) == 0 {
		roles = []string{string(RoleEmployee)}
	}

	data, err := json.Marshal(roles)
	if err == nil {
		u.Roles = data
	}
	u.Role = roles[0]
	u.IsAdmin = false
	for _, r := range roles {
		if r == string(RoleAdmin) {
			u.Role = string(RoleAdmin)
			u.IsAdmin = true
			break
		}
	}
}
