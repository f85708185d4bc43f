package domain

const RoleAdmin = "admin"

// User is the identity resolved from the bearer credential at the request
// boundary. This service never writes users; they belong to the identity
// provider.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserRef is the resolved shape embedded in order reads.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
