package scope

import (
	"time"

	"gorm.io/gorm"
)

// Branch limits a query to one branch. An empty id leaves the query untouched.
func Branch(branchID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if branchID == "" {
			return db
		}
		return db.Where("branch_id = ?", branchID)
	}
}

// DateBetween keeps rows whose column falls in [from, to] (dates, inclusive).
func DateBetween(column string, from, to time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
}

// Since keeps rows whose timestamp column is at or after t.
func Since(column string, t time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" >= ?", t)
	}
}
