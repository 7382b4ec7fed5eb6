package activity

type CreateActivityRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime     string `json:"end_time" binding:"omitempty,datetime=15:04"`
	Location    string `json:"location" binding:"max=255"`
}

type UpdateActivityRequest = CreateActivityRequest

type ActivityResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Location      string `json:"location"`
	AttendeeCount int    `json:"attendee_count"`
	CreatedAt     string `json:"created_at,omitempty"`
}

type UpcomingActivity struct {
	ActivityResponse
	DaysUntil int `json:"days_until"`
}
