package fives

import (
	"context"
	"fmt"
	"time"

	"go-hrm/internal/shared/report"
)

var rankingHeaders = []string{
	"Rank", "Department", "Improvement", "Cleanliness", "Innovation",
	"Total", "Inspections", "Latest Date", "Latest Score", "Label", "Band",
}

func (s *service) ExportRanking(ctx context.Context, month string) ([]byte, error) {
	ranking, err := s.Ranking(ctx, month)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(ranking.Departments))
	for _, d := range ranking.Departments {
		rows = append(rows, []any{
			d.Rank, d.DepartmentName, d.TotalImprovement, d.TotalCleanliness, d.TotalInnovation,
			d.TotalScore, d.InspectionCount, d.LatestDate, d.LatestScore, d.LatestLabel, d.Band,
		})
	}

	return report.WriteSheet(report.Sheet{
		Name:    "5S Ranking",
		Title:   rankingTitle(ranking.Month),
		Headers: rankingHeaders,
		Rows:    rows,
		Widths:  []float64{8, 30, 14, 14, 14, 10, 12, 14, 14, 20, 10},
	})
}

func (s *service) ReportRanking(ctx context.Context, month string) ([]byte, error) {
	ranking, err := s.Ranking(ctx, month)
	if err != nil {
		return nil, err
	}

	lines := []string{
		rankingTitle(ranking.Month),
		fmt.Sprintf("Departments inspected: %d", len(ranking.Departments)),
		"",
		fmt.Sprintf("%-5s %-28s %5s %5s %5s %6s", "Rank", "Department", "Imp", "Cln", "Inn", "Total"),
	}
	for _, d := range ranking.Departments {
		marker := ""
		switch d.Band {
		case BandTop:
			marker = " *"
		case BandBottom:
			marker = " !"
		}
		lines = append(lines, fmt.Sprintf("%-5d %-28s %5d %5d %5d %6d%s",
			d.Rank, truncate(d.DepartmentName, 28), d.TotalImprovement, d.TotalCleanliness,
			d.TotalInnovation, d.TotalScore, marker))
	}

	sum := ranking.Summary
	lines = append(lines,
		"",
		fmt.Sprintf("Inspections: %d", sum.InspectionCount),
		fmt.Sprintf("Average improvement %.1f/10, cleanliness %.1f/10, innovation %.1f/10",
			sum.AvgImprovement, sum.AvgCleanliness, sum.AvgInnovation),
		fmt.Sprintf("Average total %.1f/30", sum.AvgTotal),
		"",
		"Printed "+time.Now().Format("2006-01-02 15:04"),
	)

	return report.BuildTextPDF(lines)
}

func rankingTitle(month string) string {
	if month == "" {
		return "5S Department Ranking - all months"
	}
	if t, err := time.Parse(monthLayout, month); err == nil {
		return "5S Department Ranking - " + t.Format("January 2006")
	}
	return "5S Department Ranking - " + month
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
