package mockapi

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore — хранилище в PostgreSQL (MOCK_STORE=postgres). Схема
// создаётся миграциями пакета database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// translateErr переводит ошибки gorm в ошибки пакета.
func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (s *GormStore) ListUsers(ctx context.Context, kind Kind) ([]UserRecord, error) {
	var items []UserRecord
	err := s.db.WithContext(ctx).Where("kind = ?", kind).Order("created_at").Find(&items).Error
	return items, err
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (UserRecord, error) {
	var u UserRecord
	err := s.db.WithContext(ctx).Where("lower(email) = lower(?)", strings.TrimSpace(email)).First(&u).Error
	if err != nil {
		return UserRecord{}, translateErr(err)
	}
	return u, nil
}

func (s *GormStore) AddUser(ctx context.Context, u UserRecord) (UserRecord, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return UserRecord{}, translateErr(err)
	}
	return u, nil
}

func (s *GormStore) UpdateUser(ctx context.Context, kind Kind, id string, c UserChanges) (UserRecord, error) {
	var u UserRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kind = ? AND id = ?", kind, id).First(&u).Error; err != nil {
			return err
		}
		c.apply(&u)
		return tx.Save(&u).Error
	})
	if err != nil {
		return UserRecord{}, translateErr(err)
	}
	return u, nil
}

func (s *GormStore) DeleteUser(ctx context.Context, kind Kind, id string) error {
	res := s.db.WithContext(ctx).Where("kind = ? AND id = ?", kind, id).Delete(&UserRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListTickets(ctx context.Context) ([]TicketRecord, error) {
	var items []TicketRecord
	err := s.db.WithContext(ctx).Order("opened_at").Find(&items).Error
	return items, err
}

func (s *GormStore) CreateTicket(ctx context.Context, t TicketRecord) (TicketRecord, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.OpenedAt.IsZero() {
		t.OpenedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return TicketRecord{}, err
	}
	return t, nil
}

func (s *GormStore) UpdateTicket(ctx context.Context, t TicketRecord) (TicketRecord, error) {
	var cur TicketRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cur, "id = ?", t.ID).Error; err != nil {
			return err
		}
		return tx.Model(&cur).Select("title", "description", "priority", "status", "technician", "technician_response").
			Updates(map[string]any{
				"title":               t.Title,
				"description":         t.Description,
				"priority":            t.Priority,
				"status":              t.Status,
				"technician":          t.Technician,
				"technician_response": t.TechnicianResponse,
			}).Error
	})
	if err != nil {
		return TicketRecord{}, translateErr(err)
	}
	return cur, nil
}

func (s *GormStore) DeleteTicket(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&TicketRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
