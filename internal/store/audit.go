package store

import (
	"context"

	"asset-registry/internal/models"
)

// Audit writes one journal entry.
func (s *Store) Audit(ctx context.Context, actor, entity string, entityID uint, action, details string) error {
	record := models.AuditLog{
		Actor:    actor,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	return s.db.WithContext(ctx).Create(&record).Error
}

// ListAuditLogs returns the newest entries first.
func (s *Store) ListAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	logs := make([]models.AuditLog, 0)
	err := s.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
