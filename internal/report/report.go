// Пакет report собирает KPI по тикетам и пользователям и выводит их текстом.
package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/psds-microservice/suptec-client/internal/model"
)

// Months — сколько последних месяцев попадает в помесячную статистику.
const Months = 6

// Count — значение одной категории распределения.
type Count struct {
	Label string
	Value int
}

// Summary — агрегаты для экрана отчётов.
type Summary struct {
	GeneratedAt time.Time
	Total       int
	Closed      int
	Pending     int
	Technicians int
	CommonUsers int
	// ByStatus в порядке Aberto, Fechado, Pendente.
	ByStatus []Count
	// ByPriority в порядке Baixa, Media, Alta.
	ByPriority []Count
	// Monthly — последние Months месяцев, от старого к текущему.
	Monthly []Count
}

// HasPending — есть незакрытые тикеты (выводится предупреждение).
func (s Summary) HasPending() bool { return s.Pending > 0 }

// Build считает агрегаты. now задаёт текущий месяц для Monthly.
func Build(tickets []model.Ticket, users []model.User, now time.Time) Summary {
	s := Summary{GeneratedAt: now, Total: len(tickets)}

	status := map[model.Status]int{}
	priority := map[model.Priority]int{}
	for _, t := range tickets {
		if t.Status != nil && strings.EqualFold(strings.TrimSpace(*t.Status), "fechado") {
			s.Closed++
		}
		status[model.NormalizeStatus(t.Status)]++
		priority[model.NormalizePriority(t.Priority)]++
	}
	s.Pending = s.Total - s.Closed

	for _, u := range users {
		switch u.Variant {
		case model.Technician:
			s.Technicians++
		case model.CommonUser:
			s.CommonUsers++
		}
	}

	for _, st := range model.Statuses {
		s.ByStatus = append(s.ByStatus, Count{Label: string(st), Value: status[st]})
	}
	for _, p := range model.Priorities {
		s.ByPriority = append(s.ByPriority, Count{Label: string(p), Value: priority[p]})
	}
	s.Monthly = monthly(tickets, now)
	return s
}

type yearMonth struct {
	year  int
	month time.Month
}

func monthOf(t time.Time) yearMonth { return yearMonth{t.Year(), t.Month()} }

func monthly(tickets []model.Ticket, now time.Time) []Count {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	months := make([]yearMonth, 0, Months)
	idx := make(map[yearMonth]int, Months)
	for i := Months - 1; i >= 0; i-- {
		ym := monthOf(first.AddDate(0, -i, 0))
		idx[ym] = len(months)
		months = append(months, ym)
	}

	out := make([]Count, len(months))
	for i, ym := range months {
		out[i].Label = MonthLabel(ym.month, ym.year)
	}
	for _, t := range tickets {
		if t.OpenedAt.IsZero() {
			continue
		}
		// Месяц берётся по настенному времени, без перевода в зону now.
		if i, ok := idx[monthOf(t.OpenedAt)]; ok {
			out[i].Value++
		}
	}
	return out
}

var monthAbbr = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// MonthLabel — "out 2026".
func MonthLabel(m time.Month, year int) string {
	return monthAbbr[m-1] + " " + strconv.Itoa(year)
}
