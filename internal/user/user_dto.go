package user

type CreateUserRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=50"`
	FullName   string `json:"full_name" binding:"required,max=255"`
	Email      string `json:"email" binding:"omitempty,email"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
	Role       string `json:"role" binding:"required"`
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	FullName   string `json:"full_name" binding:"required,max=255"`
	Email      string `json:"email" binding:"omitempty,email"`
	Role       string `json:"role" binding:"required"`
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
	IsActive   *bool  `json:"is_active"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

type UserResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role"`
	EmployeeID   string `json:"employee_id,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
	IsActive     bool   `json:"is_active"`
	LastLoginAt  string `json:"last_login_at,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}
