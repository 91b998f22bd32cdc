package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the enumerated authorization role of a user.
type Role string

// Accepted user roles.
const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleLeadGuide Role = "lead-guide"
	RoleGuide     Role = "guide"
)

// Valid reports whether r is one of the accepted roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleLeadGuide, RoleGuide:
		return true
	}
	return false
}

// Password length bounds. The upper bound is bcrypt's practical limit.
const (
	PasswordMinLen = 8
	PasswordMaxLen = 72
)

// User name length bounds.
const (
	UserNameMinLen = 5
	UserNameMaxLen = 50
)

// User represents a registered user.
//
// Password holds the plaintext only transiently during signup and password
// changes; the store hashes it before persistence and it is never
// serialized. Active is the soft-delete marker: default reads exclude
// inactive users.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"                  json:"id"`
	Name                 string             `bson:"name"                           json:"name"`
	Email                string             `bson:"email"                          json:"email"`
	Photo                string             `bson:"photo,omitempty"                json:"photo,omitempty"`
	Role                 Role               `bson:"role"                           json:"role"`
	Password             string             `bson:"-"                              json:"-"`
	PasswordConfirm      string             `bson:"-"                              json:"-"`
	HashedPassword       string             `bson:"password"                       json:"-"`
	PasswordChangedAt    time.Time          `bson:"passwordChangedAt,omitempty"    json:"-"`
	PasswordResetToken   string             `bson:"passwordResetToken,omitempty"   json:"-"`
	PasswordResetExpires time.Time          `bson:"passwordResetExpires,omitempty" json:"-"`
	Active               bool               `bson:"active"                         json:"-"`
}

// NewUser creates a User ready for signup. The email is lowercased, the
// role defaults to RoleUser, and the account starts active. Returns the
// structured violation list if the provided fields fail validation.
func NewUser(name, email, password, passwordConfirm string, role Role) (*User, error) {
	if role == "" {
		role = RoleUser
	}

	user := &User{
		ID:              primitive.NewObjectID(),
		Name:            name,
		Email:           strings.ToLower(email),
		Role:            role,
		Password:        password,
		PasswordConfirm: passwordConfirm,
		Active:          true,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the User's field constraints, including the write-only
// password confirmation when a plaintext password is being set.
func (u *User) Validate() error {
	var v violations

	switch {
	case u.Name == "":
		v.add("name", "please tell us your name")
	case len(u.Name) < UserNameMinLen:
		v.add("name", fmt.Sprintf("the name must have at least %d characters", UserNameMinLen))
	case len(u.Name) > UserNameMaxLen:
		v.add("name", fmt.Sprintf("the name must have at most %d characters", UserNameMaxLen))
	}

	switch {
	case u.Email == "":
		v.add("email", "please provide your email")
	case !ValidEmail(u.Email):
		v.add("email", "please provide a valid email")
	}

	if !u.Role.Valid() {
		v.add("role", "role must be user, admin, lead-guide or guide")
	}

	if u.Password != "" {
		if len(u.Password) < PasswordMinLen {
			v.add("password", fmt.Sprintf("password must have at least %d characters", PasswordMinLen))
		} else if len(u.Password) > PasswordMaxLen {
			v.add("password", fmt.Sprintf("password must have at most %d characters", PasswordMaxLen))
		}
		if u.PasswordConfirm != u.Password {
			v.add("passwordConfirm", "passwords must match")
		}
	} else if u.HashedPassword == "" {
		v.add("password", "please provide your password")
	}

	return v.err()
}

// PasswordChangedAfter reports whether the user changed their password
// after the given time (typically a token's issued-at). Tokens issued
// before a password change must be rejected.
func (u *User) PasswordChangedAfter(t time.Time) bool {
	if u.PasswordChangedAt.IsZero() {
		return false
	}
	// Compare at second granularity: JWT iat claims are unix seconds.
	return u.PasswordChangedAt.Unix() > t.Unix()
}

// ValidEmail performs a minimal structural check of an email address:
// a non-empty local part, an @, and a dotted domain.
func ValidEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
