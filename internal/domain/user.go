package domain

// User is the public projection of a registered user. Credential fields
// are never included in API responses.
type User struct {
	ID        int64  `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// UserRecord is the full users row, including the stored credential in
// "salt:hash" form.
type UserRecord struct {
	ID        int64  `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CreatedAt string `json:"created_at"`
}

// Public strips credential fields from a user record.
func (r *UserRecord) Public() *User {
	return &User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		CreatedAt: r.CreatedAt,
	}
}

// Session is issued on successful login. The token is an opaque random
// string with no embedded claims or expiry.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// UserRepository defines persistence operations for users.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	GetByEmail(email string) (*UserRecord, error)
	Create(name, email, hashedPassword string) (*UserRecord, error)
}

// AuthService defines the signup/login use cases.
type AuthService interface {
	Register(name, email, password string) (*User, error)
	Authenticate(email, password string) (*Session, error)
}
