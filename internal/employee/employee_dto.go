package employee

type CreateEmployeeRequest struct {
	EmployeeCode string `json:"employee_code" binding:"omitempty,max=32"`
	FirstName    string `json:"first_name" binding:"required,max=100"`
	LastName     string `json:"last_name" binding:"omitempty,max=100"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"omitempty,max=50"`
	PhotoURL     string `json:"photo_url" binding:"omitempty,url"`
	BranchID     string `json:"branch_id" binding:"omitempty,uuid"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
	PositionID   string `json:"position_id" binding:"omitempty,uuid"`
	IsActive     *bool  `json:"is_active"`
}

type UpdateEmployeeRequest struct {
	EmployeeCode string `json:"employee_code" binding:"required,max=32"`
	FirstName    string `json:"first_name" binding:"required,max=100"`
	LastName     string `json:"last_name" binding:"omitempty,max=100"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"omitempty,max=50"`
	PhotoURL     string `json:"photo_url" binding:"omitempty,url"`
	BranchID     string `json:"branch_id" binding:"omitempty,uuid"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
	PositionID   string `json:"position_id" binding:"omitempty,uuid"`
	IsActive     *bool  `json:"is_active"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	EmployeeCode   string `json:"employee_code"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name,omitempty"`
	FullName       string `json:"full_name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	PhotoURL       string `json:"photo_url,omitempty"`
	BranchID       string `json:"branch_id,omitempty"`
	BranchName     string `json:"branch_name,omitempty"`
	DepartmentID   string `json:"department_id,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	PositionID     string `json:"position_id,omitempty"`
	PositionName   string `json:"position_name,omitempty"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}
