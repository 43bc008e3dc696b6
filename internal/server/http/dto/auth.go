package dto

// CustomerRegisterRequest is the signup payload.
type CustomerRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is shared by customer and staff logins.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StaffLoginResponse reports the authenticated staff member's role.
type StaffLoginResponse struct {
	Role string `json:"role"`
}

// ProfileResponse is the customer's own profile view.
type ProfileResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ProfileUpdateRequest carries editable profile fields; password change is
// optional but requires the current password.
type ProfileUpdateRequest struct {
	Name            string `json:"name" binding:"required"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
