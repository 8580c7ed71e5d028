package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	MobileNumber string `json:"mobile_number" validate:"required,min=10,max=15"`
	Password     string `json:"password"      validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateUserRequest struct {
	MobileNumber string `json:"mobile_number" validate:"required,min=10,max=15"`
	Name         string `json:"name"          validate:"required,min=2,max=100"`
	Role         string `json:"role"          validate:"required,oneof=admin employee owner"`
	Password     string `json:"password"      validate:"required,min=6"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	ID           uint   `json:"id"`
	MobileNumber string `json:"mobile_number"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

// UserStats summarizes the user table for the admin page.
type UserStats struct {
	TotalUsers     int `json:"total_users"`
	TotalAdmins    int `json:"total_admins"`
	TotalEmployees int `json:"total_employees"`
	TotalOwners    int `json:"total_owners"`
}

type UserListResponse struct {
	Data  []UserResponse `json:"data"`
	Stats UserStats      `json:"stats"`
}
