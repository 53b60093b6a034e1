package schema

// Passwords are never trimmed. They are hashed and compared exactly as sent.

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6" sanitize:"-"`
}

// ChangePasswordRequest is the body of POST /auth/change-password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required" sanitize:"-"`
	NewPassword     string `json:"newPassword" validate:"required,min=6" sanitize:"-"`
}

// CreateAdminRequest is the body of POST /admin/admins
type CreateAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6" sanitize:"-"`
	Name     string `json:"name" validate:"required,min=2,max=50"`
}

// UpdateAdminRequest is the body of PUT /admin/admins/:id. Every field is
// optional. An unknown role is ignored rather than rejected.
type UpdateAdminRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}
