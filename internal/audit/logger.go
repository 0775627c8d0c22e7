package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// Sink persists audit rows.
type Sink interface {
	WriteAuditLog(ctx context.Context, log *models.AuditLog) error
}

type Query struct {
	BarberID uint
	Action   string
	Entity   string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

type Reader interface {
	ListAuditLogs(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) WriteAuditLog(ctx context.Context, log *models.AuditLog) error {
	return l.db.WithContext(ctx).Create(log).Error
}

func (l *Logger) ListAuditLogs(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	// sempre protegido por barbeiro
	tx := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("barber_id = ?", q.BarberID)

	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if q.From != nil {
		tx = tx.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("created_at < ?", *q.To)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := tx.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func encodeMetadata(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}

var (
	_ Sink   = (*Logger)(nil)
	_ Reader = (*Logger)(nil)
)
