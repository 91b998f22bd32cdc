package api

// Common request payload structures

// SignUpRequest defines the payload for the user signup endpoint. The
// role is optional and defaults to "user"; the domain layer validates it
// against the accepted set.
type SignUpRequest struct {
	Name            string `json:"name"            validate:"required"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,min=8,max=72"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
	Role            string `json:"role"            validate:"omitempty,oneof=user admin lead-guide guide"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// ForgotPasswordRequest defines the payload for requesting a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest defines the payload for redeeming a reset token.
type ResetPasswordRequest struct {
	Password        string `json:"password"        validate:"required,min=8,max=72"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// UpdatePasswordRequest defines the payload for a logged-in password change.
type UpdatePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword"    validate:"required"`
	NewPassword        string `json:"newPassword"        validate:"required,min=8,max=72"`
	NewPasswordConfirm string `json:"newPasswordConfirm" validate:"required,eqfield=NewPassword"`
}

// CreateReviewRequest defines the payload for creating a review. Tour and
// user are optional in the body: on the nested route they are populated
// from the route parameter and the authenticated caller.
type CreateReviewRequest struct {
	Review string  `json:"review" validate:"required"`
	Rating float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Tour   string  `json:"tour"   validate:"omitempty,len=24"`
	User   string  `json:"user"   validate:"omitempty,len=24"`
}
