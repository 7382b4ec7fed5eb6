package position

type CreatePositionRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Level        int    `json:"level" binding:"required,min=1,max=20"`
	Description  string `json:"description"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
}

type UpdatePositionRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Level        int    `json:"level" binding:"required,min=1,max=20"`
	Description  string `json:"description"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
}

type PositionResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Level          int    `json:"level"`
	Description    string `json:"description,omitempty"`
	DepartmentID   string `json:"department_id,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
