package health

import (
	"math"
	"sort"
)

const (
	DefaultMinRiskScore = 20
	DefaultAtRiskLimit  = 10

	LabelCriticalBloodPressure = "critical high blood pressure"
	LabelHighBloodPressure     = "high blood pressure"
	LabelSlowPulse             = "abnormally slow pulse"
	LabelFastPulse             = "abnormally fast pulse"
	LabelVeryHighBloodSugar    = "very high blood sugar"
	LabelHighBloodSugar        = "high blood sugar"

	BPNormal   = "normal"
	BPElevated = "elevated"
	BPHigh     = "high"
)

// Vitals are the readings the risk scorer looks at. A zero heart rate or a nil
// blood sugar means the reading was not taken.
type Vitals struct {
	Systolic   int
	Diastolic  int
	HeartRate  int
	BloodSugar *int
}

type RiskAssessment struct {
	Score  int      `json:"score"`
	Labels []string `json:"labels"`
}

// ScoreRisk adds up the risk deltas of one record. Blood pressure and blood
// sugar each fire at most one tier, the higher one.
func ScoreRisk(v Vitals) RiskAssessment {
	res := RiskAssessment{Labels: []string{}}

	switch {
	case v.Systolic >= 180 || v.Diastolic >= 120:
		res.Score += 50
		res.Labels = append(res.Labels, LabelCriticalBloodPressure)
	case v.Systolic >= 140 || v.Diastolic >= 90:
		res.Score += 30
		res.Labels = append(res.Labels, LabelHighBloodPressure)
	}

	switch {
	case v.HeartRate > 0 && v.HeartRate < 50:
		res.Score += 25
		res.Labels = append(res.Labels, LabelSlowPulse)
	case v.HeartRate > 120:
		res.Score += 25
		res.Labels = append(res.Labels, LabelFastPulse)
	}

	if v.BloodSugar != nil {
		switch {
		case *v.BloodSugar >= 200:
			res.Score += 40
			res.Labels = append(res.Labels, LabelVeryHighBloodSugar)
		case *v.BloodSugar >= 126:
			res.Score += 20
			res.Labels = append(res.Labels, LabelHighBloodSugar)
		}
	}

	return res
}

type AtRiskRecord struct {
	HealthRecordResponse
	RiskScore int      `json:"risk_score"`
	Risks     []string `json:"risks"`
}

// RankAtRisk scores every record, keeps those at or above minScore and returns
// at most limit of them, highest score first. Equal scores keep input order.
// A limit of zero or less returns every match.
func RankAtRisk(records []HealthRecordResponse, minScore, limit int) []AtRiskRecord {
	out := make([]AtRiskRecord, 0)
	for _, r := range records {
		a := ScoreRisk(r.Vitals())
		if a.Score < minScore {
			continue
		}
		out = append(out, AtRiskRecord{
			HealthRecordResponse: r,
			RiskScore:            a.Score,
			Risks:                a.Labels,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RiskScore > out[j].RiskScore
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// BloodPressureStatus buckets a reading: high at 140/90, elevated at 120/80.
func BloodPressureStatus(systolic, diastolic int) string {
	switch {
	case systolic >= 140 || diastolic >= 90:
		return BPHigh
	case systolic >= 120 || diastolic >= 80:
		return BPElevated
	default:
		return BPNormal
	}
}

// BMI is weight (kg) over height (m) squared, to one decimal. Missing inputs give 0.
func BMI(weight, heightCM float64) float64 {
	if weight <= 0 || heightCM <= 0 {
		return 0
	}
	m := heightCM / 100
	return math.Round(weight/(m*m)*10) / 10
}

type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type VitalsSummary struct {
	TotalRecords  int           `json:"total_records"`
	AvgSystolic   int           `json:"avg_systolic"`
	AvgDiastolic  int           `json:"avg_diastolic"`
	AvgHeartRate  int           `json:"avg_heart_rate"`
	AvgBloodSugar int           `json:"avg_blood_sugar"`
	BPStatus      []StatusCount `json:"bp_status"`
}

// SummarizeVitals averages the readings over records. Pressure and pulse
// average over records that carry either; blood sugar over records that carry it.
func SummarizeVitals(records []HealthRecordResponse) VitalsSummary {
	sum := VitalsSummary{
		TotalRecords: len(records),
		BPStatus: []StatusCount{
			{Name: BPNormal}, {Name: BPElevated}, {Name: BPHigh},
		},
	}

	var sys, dia, hr, sugar, vitalsN, sugarN int
	for _, r := range records {
		if r.BloodPressureSystolic > 0 || r.HeartRate > 0 {
			sys += r.BloodPressureSystolic
			dia += r.BloodPressureDiastolic
			hr += r.HeartRate
			vitalsN++
		}
		if r.BloodSugar != nil && *r.BloodSugar > 0 {
			sugar += *r.BloodSugar
			sugarN++
		}

		switch BloodPressureStatus(r.BloodPressureSystolic, r.BloodPressureDiastolic) {
		case BPNormal:
			sum.BPStatus[0].Value++
		case BPElevated:
			sum.BPStatus[1].Value++
		case BPHigh:
			sum.BPStatus[2].Value++
		}
	}

	sum.AvgSystolic = roundDiv(sys, vitalsN)
	sum.AvgDiastolic = roundDiv(dia, vitalsN)
	sum.AvgHeartRate = roundDiv(hr, vitalsN)
	sum.AvgBloodSugar = roundDiv(sugar, sugarN)
	return sum
}

type DailyVitals struct {
	Date       string `json:"date"`
	Count      int    `json:"count"`
	Systolic   int    `json:"systolic"`
	Diastolic  int    `json:"diastolic"`
	HeartRate  int    `json:"heart_rate"`
	BloodSugar int    `json:"blood_sugar"`
}

// DailyTrend groups records by recorded date and averages each day's readings,
// earliest day first.
func DailyTrend(records []HealthRecordResponse) []DailyVitals {
	type acc struct {
		n, sys, dia, hr, sugar, sugarN int
	}
	byDay := make(map[string]*acc)
	var days []string

	for _, r := range records {
		d := r.RecordedDate()
		a, ok := byDay[d]
		if !ok {
			a = &acc{}
			byDay[d] = a
			days = append(days, d)
		}
		a.n++
		a.sys += r.BloodPressureSystolic
		a.dia += r.BloodPressureDiastolic
		a.hr += r.HeartRate
		if r.BloodSugar != nil {
			a.sugar += *r.BloodSugar
			a.sugarN++
		}
	}

	sort.Strings(days)
	out := make([]DailyVitals, 0, len(days))
	for _, d := range days {
		a := byDay[d]
		out = append(out, DailyVitals{
			Date:       d,
			Count:      a.n,
			Systolic:   roundDiv(a.sys, a.n),
			Diastolic:  roundDiv(a.dia, a.n),
			HeartRate:  roundDiv(a.hr, a.n),
			BloodSugar: roundDiv(a.sugar, a.sugarN),
		})
	}
	return out
}

func roundDiv(total, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(n)))
}
