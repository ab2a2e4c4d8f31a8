package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entry is one journaled client action and its outcome.
type Entry struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	Op        string    `json:"op" gorm:"size:32;index"`
	TaskID    string    `json:"taskId" gorm:"size:64;index"`
	TaskName  string    `json:"taskName" gorm:"size:255"`
	Success   bool      `json:"success"`
	Code      int       `json:"code"`
	Message   string    `json:"message" gorm:"size:1024"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Entry) TableName() string {
	return "taskdeck_journal"
}

// Journal records what the user did and how it went.
type Journal interface {
	Record(ctx context.Context, e *Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

type journal struct {
	db *gorm.DB
}

// withParseTime adds parseTime=True to a MySQL dsn that does not set it,
// the driver only scans DATETIME into time.Time with it.
func withParseTime(dsn string) string {
	if strings.Contains(strings.ToLower(dsn), "parsetime=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&parseTime=True"
	}
	return dsn + "?parseTime=True"
}

// NewJournal opens the MySQL journal at dsn and migrates its table.
func NewJournal(dsn string) (Journal, error) {
	db, err := gorm.Open(mysql.Open(withParseTime(dsn)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect journal db: %w", err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	log.Infof("journal ready in table %s", Entry{}.TableName())
	return &journal{db: db}, nil
}

// OpenJournal is NewJournal that degrades to NopJournal when dsn is empty
// or the database is unreachable.
func OpenJournal(dsn string) Journal {
	if dsn == "" {
		return NopJournal{}
	}
	j, err := NewJournal(dsn)
	if err != nil {
		log.Warnf("journal disabled: %v", err)
		return NopJournal{}
	}
	return j
}

func (j *journal) Record(ctx context.Context, e *Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return j.db.WithContext(ctx).Create(e).Error
}

func (j *journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	var entries []Entry
	err := j.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&entries).Error
	return entries, err
}

func (j *journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NopJournal drops every entry.
type NopJournal struct{}

func (NopJournal) Record(context.Context, *Entry) error { return nil }

func (NopJournal) Recent(context.Context, int) ([]Entry, error) { return nil, nil }

func (NopJournal) Close() error { return nil }
