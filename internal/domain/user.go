package domain

const (
	RoleUser  = "USER"
	RoleStaff = "STAFF"
)

type User struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
	Hash  string `db:"password_hash" json:"-"`
	Role  string `db:"role" json:"role"`
}

func (u *User) IsStaff() bool { return u != nil && u.Role == RoleStaff }
