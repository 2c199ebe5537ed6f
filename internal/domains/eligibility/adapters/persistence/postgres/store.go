package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/ports"
)

var (
	_ ports.Store  = (*Store)(nil)
	_ ports.Pinger = (*Store)(nil)
)

// Store persists determinations in PostgreSQL using GORM. Schema is owned by platform/migrations.
type Store struct {
	db *gorm.DB
}

// NewStore wires a PostgreSQL-backed store. Caller manages DB lifecycle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// determinationRecord maps a determination to the determinations table.
type determinationRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	FirstName   string    `gorm:"column:first_name"`
	LastName    string    `gorm:"column:last_name"`
	DateOfBirth time.Time `gorm:"column:date_of_birth;type:date"`
	Age         int       `gorm:"column:age"`
	Eligible    bool      `gorm:"column:eligible"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (determinationRecord) TableName() string { return "determinations" }

type aggregateRow struct {
	Total    int64
	Eligible int64
	AgeSum   int64
}

// Append inserts one row; id and created_at come back from the insert.
func (s *Store) Append(ctx context.Context, cmd domain.Command, age int, eligible bool) (int64, time.Time, error) {
	if err := s.ensureDB(); err != nil {
		return 0, time.Time{}, err
	}
	record := determinationRecord{
		FirstName:   cmd.FirstName,
		LastName:    cmd.LastName,
		DateOfBirth: cmd.DateOfBirth,
		Age:         age,
		Eligible:    eligible,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return 0, time.Time{}, classify("append determination", err)
	}
	return record.ID, record.CreatedAt.UTC(), nil
}

// Aggregate reads counts and the age sum in a single statement so they describe the same rows.
func (s *Store) Aggregate(ctx context.Context) (domain.StatisticsSnapshot, error) {
	if err := s.ensureDB(); err != nil {
		return domain.StatisticsSnapshot{}, err
	}
	var row aggregateRow
	err := s.db.WithContext(ctx).
		Model(&determinationRecord{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE eligible) AS eligible, COALESCE(SUM(age), 0) AS age_sum").
		Scan(&row).Error
	if err != nil {
		return domain.StatisticsSnapshot{}, classify("aggregate determinations", err)
	}
	return domain.NewStatisticsSnapshot(row.Total, row.Eligible, row.AgeSum), nil
}

// Ping verifies the pool can reach the server.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return classify("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return classify("ping", err)
	}
	return nil
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres determination store not configured")
	}
	return nil
}
