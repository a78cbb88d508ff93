package user

type Role string

const (
	RoleAdmin Role = "ADMIN" // manages employees, groups, holidays and reviews leave
	RoleUser  Role = "USER"  // read access and own leave applications
)

type User struct {
	ID        int64  `json:"userId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Role      Role   `json:"role"`
}

// IsAdmin checks if user has the administrative role
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
