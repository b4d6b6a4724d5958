package domain

// Role is an ordered enum; comparisons are always numeric.
type Role int

const (
	RoleUser Role = iota
	RoleEmployee
	RoleAdmin
)

func (r Role) Valid() bool { return r >= RoleUser && r <= RoleAdmin }

// AtLeast reports whether r sits at or above min in the role order.
func (r Role) AtLeast(min Role) bool { return r >= min }

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleEmployee:
		return "employee"
	case RoleAdmin:
		return "admin"
	}
	return "unknown"
}

type User struct {
	ID           string
	Email        string // unique
	Pseudo       string
	PasswordHash string // never serialized to callers
	Role         Role
}

// UserUpdate carries a partial update; nil fields keep their prior value.
type UserUpdate struct {
	Email    *string
	Pseudo   *string
	Password *string // plaintext, hashed by the service before storage
	Role     *Role
}

// Identity is the verified claim set of the caller, attached to the
// request context by the auth middleware.
type Identity struct {
	UserID string
	Pseudo string
	Role   Role
}
