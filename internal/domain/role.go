package domain

// Role represents an ordered privilege level. Stored as text.
type Role string

const (
	RoleUser      Role = "user"
	RoleTrusted   Role = "trusted"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

var roleRank = map[Role]int{
	RoleUser:      0,
	RoleTrusted:   1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// AtLeast reports whether r has at least the privilege of other.
// Unknown roles rank below RoleUser.
func (r Role) AtLeast(other Role) bool {
	return roleRank[r] >= roleRank[other]
}

// ParseRole maps a stored role string to a Role, defaulting to RoleUser for
// unknown values so a bad row never grants privileges.
func ParseRole(s string) Role {
	r := Role(s)
	if _, ok := roleRank[r]; !ok {
		return RoleUser
	}
	return r
}
