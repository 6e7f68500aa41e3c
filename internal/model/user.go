package model

// Roles a user may hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account as stored in the `users` table.  The password
// hash never leaves the server: it carries no JSON name.
//
// Fields:
//  ID           – 24-char object id.
//  Name         – display name.
//  Email        – lowercased, unique among active accounts.
//  PasswordHash – argon2id PHC string.
//  Role         – user or admin.
//  IsDeleted    – soft-delete flag, reserved (never set for users).
//  CreatedAt    – creation time.
//  UpdatedAt    – last profile or password change.
type User struct {
	ID           string    `json:"User-Id"`
	Name         string    `json:"Name"`
	Email        string    `json:"Email-Address"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"Role"`
	IsDeleted    bool      `json:"-"`
	CreatedAt    Timestamp `json:"Created-At"`
	UpdatedAt    Timestamp `json:"Updated-At"`
}

// AuthUser is the identity view returned by register and login.
type AuthUser struct {
	ID    string `json:"User-Id"`
	Name  string `json:"Name"`
	Email string `json:"Email-Address"`
	Role  string `json:"Role"`
}

// AuthView strips everything but the identity fields.
func (u *User) AuthView() AuthUser {
	return AuthUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
