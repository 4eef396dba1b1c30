package model

import "strings"

// Status — нормализованный статус тикета для отчётов.
type Status string

const (
	StatusOpen    Status = "Aberto"
	StatusClosed  Status = "Fechado"
	StatusPending Status = "Pendente"
)

// Statuses в порядке отображения.
var Statuses = []Status{StatusOpen, StatusClosed, StatusPending}

// NormalizeStatus: nil и всё нераспознанное -> Pendente.
func NormalizeStatus(s *string) Status {
	if s == nil {
		return StatusPending
	}
	v := Fold(*s)
	switch {
	case strings.Contains(v, "aberto"), v == "open":
		return StatusOpen
	case strings.Contains(v, "fechado"), v == "closed":
		return StatusClosed
	}
	return StatusPending
}
