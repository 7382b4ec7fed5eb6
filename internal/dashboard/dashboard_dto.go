package dashboard

type SummaryResponse struct {
	Employees     int64  `json:"employees"`
	Departments   int64  `json:"departments"`
	Branches      int64  `json:"branches"`
	Activities    int64  `json:"activities"`
	HealthRecords int64  `json:"health_records"`
	CheckInsToday int64  `json:"check_ins_today"`
	CheckInsTotal int64  `json:"check_ins_total"`
	GeneratedAt   string `json:"generated_at"`
}
