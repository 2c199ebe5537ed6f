package migrations

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the eligibility context. Adapters never automigrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(&determinationRecord{}); err != nil {
		return fmt.Errorf("automigrate determinations: %w", err)
	}
	return ensureChecks(db, determinationRecord{}.TableName(), determinationChecks)
}

// Determination schema mirrors the eligibility Postgres adapter.
type determinationRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	FirstName   string    `gorm:"column:first_name;type:varchar(50);not null"`
	LastName    string    `gorm:"column:last_name;type:varchar(50);not null"`
	DateOfBirth time.Time `gorm:"column:date_of_birth;type:date;not null"`
	Age         int       `gorm:"column:age;not null"`
	Eligible    bool      `gorm:"column:eligible;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime;index"`
}

func (determinationRecord) TableName() string { return "determinations" }

type check struct {
	name string
	expr string
}

// Rows the service could never produce are refused by the database as well.
var determinationChecks = []check{
	{name: "chk_determinations_age_range", expr: "age BETWEEN 0 AND 150"},
	{name: "chk_determinations_eligible_matches_age", expr: "eligible = (age >= 18)"},
	{name: "chk_determinations_first_name_length", expr: "char_length(first_name) BETWEEN 1 AND 50"},
	{name: "chk_determinations_last_name_length", expr: "char_length(last_name) BETWEEN 1 AND 50"},
}

func ensureChecks(db *gorm.DB, table string, checks []check) error {
	for _, c := range checks {
		if db.Migrator().HasConstraint(table, c.name) {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s)",
			pq.QuoteIdentifier(table), pq.QuoteIdentifier(c.name), c.expr)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", c.name, err)
		}
	}
	return nil
}
