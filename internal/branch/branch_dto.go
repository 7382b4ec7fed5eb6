package branch

type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Address string `json:"address"`
	Phone   string `json:"phone" binding:"omitempty,max=50"`
}

type UpdateBranchRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Address string `json:"address"`
	Phone   string `json:"phone" binding:"omitempty,max=50"`
}

type BranchResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
