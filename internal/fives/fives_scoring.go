package fives

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	fiveserrors "go-hrm/internal/fives/errors"
	"go-hrm/internal/shared/apperror"

	"github.com/google/uuid"
)

const (
	MinSubScore = 0
	MaxSubScore = 10
	MaxTotal    = 3 * MaxSubScore

	LabelExcellent        = "excellent"
	LabelGood             = "good"
	LabelAverage          = "average"
	LabelNeedsImprovement = "needs improvement"

	BandTop    = "top"
	BandMiddle = "middle"
	BandBottom = "bottom"

	UnknownDepartment = "Unassigned"

	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

type Scores struct {
	Improvement int `json:"improvement"`
	Cleanliness int `json:"cleanliness"`
	Innovation  int `json:"innovation"`
	Total       int `json:"total"`
}

// ValidateScores checks each sub-score is in [0, 10] and returns the triple
// with its total. Nothing is saved when any score is out of range.
func ValidateScores(improvement, cleanliness, innovation int) (Scores, error) {
	named := []struct {
		name  string
		value int
	}{
		{"improvement", improvement},
		{"cleanliness", cleanliness},
		{"innovation", innovation},
	}
	for _, s := range named {
		if s.value < MinSubScore || s.value > MaxSubScore {
			return Scores{}, apperror.Describe(fiveserrors.ErrScoreOutOfRange,
				fmt.Sprintf("Score %s must be between %d and %d, got %d", s.name, MinSubScore, MaxSubScore, s.value))
		}
	}

	return Scores{
		Improvement: improvement,
		Cleanliness: cleanliness,
		Innovation:  innovation,
		Total:       improvement + cleanliness + innovation,
	}, nil
}

func RankLabel(total int) string {
	switch {
	case total >= 27:
		return LabelExcellent
	case total >= 21:
		return LabelGood
	case total >= 15:
		return LabelAverage
	default:
		return LabelNeedsImprovement
	}
}

// IsDuplicateInspection reports whether monthRecords already hold a sheet from
// inspectorName for departmentID. Names are compared trimmed and case-folded.
func IsDuplicateInspection(monthRecords []Inspection, inspectorName string, departmentID uuid.UUID) bool {
	name := strings.TrimSpace(inspectorName)
	for _, r := range monthRecords {
		if r.DepartmentID == departmentID && strings.EqualFold(strings.TrimSpace(r.InspectorName), name) {
			return true
		}
	}
	return false
}

type DepartmentRanking struct {
	Rank             int     `json:"rank"`
	DepartmentID     string  `json:"department_id"`
	DepartmentName   string  `json:"department_name"`
	TotalImprovement int     `json:"total_improvement"`
	TotalCleanliness int     `json:"total_cleanliness"`
	TotalInnovation  int     `json:"total_innovation"`
	TotalScore       int     `json:"total_score"`
	InspectionCount  int     `json:"inspection_count"`
	LatestDate       string  `json:"latest_date"`
	LatestScore      int     `json:"latest_score"`
	LatestLabel      string  `json:"latest_label"`
	Band             string  `json:"band"`
	ScoreShare       float64 `json:"score_share"`
}

// AggregateByDepartment groups records by department ID, sums the sub-scores
// and totals, and orders departments by summed total, highest first. Ties keep
// the order in which departments were first seen. records is not modified.
func AggregateByDepartment(records []Inspection) []DepartmentRanking {
	index := make(map[uuid.UUID]int)
	var out []DepartmentRanking

	for _, r := range records {
		date := r.InspectionDate.Format(dateLayout)
		i, ok := index[r.DepartmentID]
		if !ok {
			index[r.DepartmentID] = len(out)
			out = append(out, DepartmentRanking{
				DepartmentID:   r.DepartmentID.String(),
				DepartmentName: r.DepartmentName(),
				LatestDate:     date,
				LatestScore:    r.TotalScore,
			})
			i = len(out) - 1
		}

		d := &out[i]
		d.TotalImprovement += r.ScoreImprovement
		d.TotalCleanliness += r.ScoreCleanliness
		d.TotalInnovation += r.ScoreInnovation
		d.TotalScore += r.TotalScore
		d.InspectionCount++
		if date > d.LatestDate {
			d.LatestDate = date
			d.LatestScore = r.TotalScore
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].TotalScore > out[b].TotalScore
	})

	var leader int
	if len(out) > 0 {
		leader = out[0].TotalScore
	}
	for i := range out {
		out[i].Rank = i + 1
		out[i].Band = RankBand(i+1, len(out))
		out[i].LatestLabel = RankLabel(out[i].LatestScore)
		if leader > 0 {
			out[i].ScoreShare = round1(float64(out[i].TotalScore) / float64(leader) * 100)
		}
	}
	return out
}

// RankBand classifies a 1-based rank: the first three are "top", the last two
// are "bottom" once at least five departments are ranked, the rest "middle".
func RankBand(rank, total int) string {
	switch {
	case rank <= 3:
		return BandTop
	case total >= 5 && rank > total-2:
		return BandBottom
	default:
		return BandMiddle
	}
}

type RankingSummary struct {
	InspectionCount int     `json:"inspection_count"`
	AvgImprovement  float64 `json:"avg_improvement"`
	AvgCleanliness  float64 `json:"avg_cleanliness"`
	AvgInnovation   float64 `json:"avg_innovation"`
	AvgTotal        float64 `json:"avg_total"`
}

// Summarize averages each sub-score and the total across records, to one decimal.
func Summarize(records []Inspection) RankingSummary {
	if len(records) == 0 {
		return RankingSummary{}
	}

	var imp, cln, inn, tot int
	for _, r := range records {
		imp += r.ScoreImprovement
		cln += r.ScoreCleanliness
		inn += r.ScoreInnovation
		tot += r.TotalScore
	}
	n := float64(len(records))
	return RankingSummary{
		InspectionCount: len(records),
		AvgImprovement:  round1(float64(imp) / n),
		AvgCleanliness:  round1(float64(cln) / n),
		AvgInnovation:   round1(float64(inn) / n),
		AvgTotal:        round1(float64(tot) / n),
	}
}

// MonthRange returns the first and last calendar day of a YYYY-MM month.
func MonthRange(month string) (time.Time, time.Time, error) {
	first, err := time.Parse(monthLayout, strings.TrimSpace(month))
	if err != nil {
		return time.Time{}, time.Time{}, fiveserrors.ErrInvalidMonth
	}
	last := first.AddDate(0, 1, -1)
	return first, last, nil
}

func MonthOf(t time.Time) string {
	return t.Format(monthLayout)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
