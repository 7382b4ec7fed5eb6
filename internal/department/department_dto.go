package department

type CreateDepartmentRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	BranchID string `json:"branch_id" binding:"omitempty,uuid"`
	IsActive *bool  `json:"is_active"`
}

type UpdateDepartmentRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	BranchID string `json:"branch_id" binding:"omitempty,uuid"`
	IsActive *bool  `json:"is_active"`
}

type DepartmentResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BranchID   string `json:"branch_id,omitempty"`
	BranchName string `json:"branch_name,omitempty"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
