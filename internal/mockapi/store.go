// Пакет mockapi — локальная заглушка SUPTEC API для разработки и
// интеграционных тестов клиента. Обслуживает ту же таблицу эндпоинтов,
// выдаёт JWT при входе менеджера и требует bearer-токен на Chamado/*.
package mockapi

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("mockapi: not found")
	// ErrConflict — e-mail уже занят.
	ErrConflict = errors.New("mockapi: email already registered")
)

// Kind — тип пользователя в хранилище.
type Kind string

const (
	KindManager    Kind = "gerente"
	KindTechnician Kind = "tecnico"
	KindCommonUser Kind = "usuario"
)

// Kinds в порядке ресурсов API.
var Kinds = []Kind{KindManager, KindTechnician, KindCommonUser}

// Resource — префикс пути API для типа ("Gerente", "Tecnico", "Usuario").
func (k Kind) Resource() string {
	switch k {
	case KindManager:
		return "Gerente"
	case KindTechnician:
		return "Tecnico"
	case KindCommonUser:
		return "Usuario"
	}
	return ""
}

// IDKey — имя поля идентификатора в JSON.
func (k Kind) IDKey() string {
	return string(k) + "ID"
}

// UsesSpecialty — техник хранит специализацию вместо отдела.
func (k Kind) UsesSpecialty() bool { return k == KindTechnician }

// UserRecord — пользователь в хранилище заглушки.
type UserRecord struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)"`
	Kind         Kind      `gorm:"type:varchar(16);index;not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Phone        string    `gorm:"type:varchar(32)"`
	Sector       string    `gorm:"type:varchar(128)"`
	Specialty    string    `gorm:"type:varchar(128)"`
	CreatedAt    time.Time
}

func (UserRecord) TableName() string { return "suptec_users" }

// TicketRecord — тикет в хранилище заглушки.
type TicketRecord struct {
	ID                 string    `gorm:"primaryKey;type:varchar(36)"`
	Title              string    `gorm:"type:varchar(255);not null"`
	Description        string    `gorm:"type:text"`
	Priority           string    `gorm:"type:varchar(16);index;not null"`
	Status             *string   `gorm:"type:varchar(32)"`
	RequesterName      string    `gorm:"type:varchar(255)"`
	RequesterEmail     string    `gorm:"type:varchar(255)"`
	RequesterSector    string    `gorm:"type:varchar(128)"`
	Technician         *string   `gorm:"type:varchar(255)"`
	TechnicianResponse *string   `gorm:"type:text"`
	OpenedAt           time.Time `gorm:"not null"`
}

func (TicketRecord) TableName() string { return "suptec_tickets" }

// UserChanges — поля, которые меняет <Resource>/Editar. Пустой
// PasswordHash — пароль не меняется; nil Affiliation — не меняется.
type UserChanges struct {
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Affiliation  *string
}

// Store — хранилище заглушки. Реализации: MemoryStore и GormStore.
type Store interface {
	ListUsers(ctx context.Context, kind Kind) ([]UserRecord, error)
	FindUserByEmail(ctx context.Context, email string) (UserRecord, error)
	AddUser(ctx context.Context, u UserRecord) (UserRecord, error)
	UpdateUser(ctx context.Context, kind Kind, id string, c UserChanges) (UserRecord, error)
	DeleteUser(ctx context.Context, kind Kind, id string) error

	ListTickets(ctx context.Context) ([]TicketRecord, error)
	CreateTicket(ctx context.Context, t TicketRecord) (TicketRecord, error)
	UpdateTicket(ctx context.Context, t TicketRecord) (TicketRecord, error)
	DeleteTicket(ctx context.Context, id string) error
}

// apply — общая логика UpdateUser для обеих реализаций.
func (c UserChanges) apply(u *UserRecord) {
	u.Name = c.Name
	u.Email = c.Email
	u.Phone = c.Phone
	if c.PasswordHash != "" {
		u.PasswordHash = c.PasswordHash
	}
	if c.Affiliation != nil {
		if u.Kind.UsesSpecialty() {
			u.Specialty = *c.Affiliation
		} else {
			u.Sector = *c.Affiliation
		}
	}
}
