package domain

import "time"

// User is a local account created through the sign-up flow. Login holds the
// login key ("provider:externalID") linking the account to the external
// identity it was created from.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Role      Role      `json:"role" db:"role"`
	Login     string    `json:"-" db:"login"`
	SignupIP  string    `json:"-" db:"signup_ip"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MaxUsernameLen is the display-name limit. Longer names are truncated before
// validation and storage.
const MaxUsernameLen = 32
