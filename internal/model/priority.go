package model

import "strings"

// Priority — каноническое представление приоритета тикета.
// Значения совпадают со строками, которые ожидает API.
type Priority string

const (
	PriorityLow    Priority = "Baixa"
	PriorityMedium Priority = "Media"
	PriorityHigh   Priority = "Alta"
)

// PriorityAll — значение фильтра «без фильтра».
const PriorityAll = "Todas"

// Priorities в порядке отображения.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority разбирает ввод пользователя. Принимает португальские и
// английские названия без учёта регистра и акцентов.
func ParsePriority(s string) (Priority, bool) {
	switch Fold(s) {
	case "baixa", "low":
		return PriorityLow, true
	case "media", "medium":
		return PriorityMedium, true
	case "alta", "high":
		return PriorityHigh, true
	}
	return "", false
}

// SamePriority сравнивает два приоритета без учёта регистра и акцентов.
func SamePriority(a, b string) bool {
	return strings.TrimSpace(a) != "" && Fold(a) == Fold(b)
}

// NormalizePriority используется для отчётов: всё, что не «alta» и не
// «media», считается низким приоритетом.
func NormalizePriority(s string) Priority {
	v := Fold(s)
	switch {
	case strings.Contains(v, "alta"):
		return PriorityHigh
	case strings.Contains(v, "media"):
		return PriorityMedium
	}
	return PriorityLow
}
