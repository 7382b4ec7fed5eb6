package fives

// Scores are pointers so an explicit 0 passes the required check.
type CreateInspectionRequest struct {
	DepartmentID          string `json:"department_id" binding:"required,uuid"`
	InspectorName         string `json:"inspector_name" binding:"required,max=255"`
	InspectorDepartmentID string `json:"inspector_department_id" binding:"omitempty,uuid"`
	InspectionDate        string `json:"inspection_date" binding:"required"`
	ScoreImprovement      *int   `json:"score_improvement" binding:"required"`
	ScoreCleanliness      *int   `json:"score_cleanliness" binding:"required"`
	ScoreInnovation       *int   `json:"score_innovation" binding:"required"`
	Notes                 string `json:"notes"`
}

type UpdateInspectionRequest = CreateInspectionRequest

type InspectionFilter struct {
	Month        string
	Inspector    string
	DepartmentID string
}

type InspectionResponse struct {
	ID                    string `json:"id"`
	DepartmentID          string `json:"department_id"`
	DepartmentName        string `json:"department_name"`
	InspectorName         string `json:"inspector_name"`
	InspectorDepartmentID string `json:"inspector_department_id,omitempty"`
	InspectionDate        string `json:"inspection_date"`
	ScoreImprovement      int    `json:"score_improvement"`
	ScoreCleanliness      int    `json:"score_cleanliness"`
	ScoreInnovation       int    `json:"score_innovation"`
	TotalScore            int    `json:"total_score"`
	RankLabel             string `json:"rank_label"`
	Notes                 string `json:"notes,omitempty"`
	CreatedAt             string `json:"created_at,omitempty"`
}

type RankingResponse struct {
	Month       string              `json:"month,omitempty"`
	Departments []DepartmentRanking `json:"departments"`
	Summary     RankingSummary      `json:"summary"`
}
