package mockapi

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore — хранилище в памяти процесса (MOCK_STORE=memory).
type MemoryStore struct {
	mu      sync.RWMutex
	users   []UserRecord
	tickets []TicketRecord
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) ListUsers(_ context.Context, kind Kind) ([]UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []UserRecord
	for _, u := range s.users {
		if u.Kind == kind {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.emailIndex(email, ""); i >= 0 {
		return s.users[i], nil
	}
	return UserRecord{}, ErrNotFound
}

// emailIndex — позиция пользователя с таким e-mail, кроме exceptID.
func (s *MemoryStore) emailIndex(email, exceptID string) int {
	email = strings.TrimSpace(email)
	return slices.IndexFunc(s.users, func(u UserRecord) bool {
		return u.ID != exceptID && strings.EqualFold(u.Email, email)
	})
}

func (s *MemoryStore) AddUser(_ context.Context, u UserRecord) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailIndex(u.Email, "") >= 0 {
		return UserRecord{}, ErrConflict
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	s.users = append(s.users, u)
	return u, nil
}

func (s *MemoryStore) userIndex(kind Kind, id string) int {
	return slices.IndexFunc(s.users, func(u UserRecord) bool {
		return u.Kind == kind && u.ID == id
	})
}

func (s *MemoryStore) UpdateUser(_ context.Context, kind Kind, id string, c UserChanges) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(kind, id)
	if i < 0 {
		return UserRecord{}, ErrNotFound
	}
	if s.emailIndex(c.Email, id) >= 0 {
		return UserRecord{}, ErrConflict
	}
	c.apply(&s.users[i])
	return s.users[i], nil
}

func (s *MemoryStore) DeleteUser(_ context.Context, kind Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(kind, id)
	if i < 0 {
		return ErrNotFound
	}
	s.users = slices.Delete(s.users, i, i+1)
	return nil
}

func (s *MemoryStore) ListTickets(context.Context) ([]TicketRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tickets), nil
}

func (s *MemoryStore) CreateTicket(_ context.Context, t TicketRecord) (TicketRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.OpenedAt.IsZero() {
		t.OpenedAt = s.now()
	}
	s.tickets = append(s.tickets, t)
	return t, nil
}

func (s *MemoryStore) ticketIndex(id string) int {
	return slices.IndexFunc(s.tickets, func(t TicketRecord) bool { return t.ID == id })
}

// UpdateTicket заменяет редактируемые поля; заявитель и дата открытия
// остаются прежними.
func (s *MemoryStore) UpdateTicket(_ context.Context, t TicketRecord) (TicketRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.ticketIndex(t.ID)
	if i < 0 {
		return TicketRecord{}, ErrNotFound
	}
	cur := &s.tickets[i]
	cur.Title = t.Title
	cur.Description = t.Description
	cur.Priority = t.Priority
	cur.Status = t.Status
	cur.Technician = t.Technician
	cur.TechnicianResponse = t.TechnicianResponse
	return *cur, nil
}

func (s *MemoryStore) DeleteTicket(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.ticketIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tickets = slices.Delete(s.tickets, i, i+1)
	return nil
}
