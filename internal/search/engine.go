// Пакет search — поиск и фильтрация загруженных списков на клиенте.
//
// Результат = (term пустой ? все : совпавшие по тексту) ∩ категория,
// если выбрана не sentinel-категория.
package search

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/psds-microservice/suptec-client/internal/model"
	"github.com/psds-microservice/suptec-client/internal/service"
)

// Debounce — задержка перед применением поискового запроса в TUI.
const Debounce = 250 * time.Millisecond

// Engine хранит поисковую строку и категорию и применяет их к списку.
type Engine[T any] struct {
	match      func(T, string) bool
	inCategory func(T, string) bool
	sentinel   string
	counter    string

	mu       sync.RWMutex
	term     string
	category string
	last     int
}

// Options — предикаты и тексты для конкретного типа записей.
// InCategory == nil — категория не используется.
type Options[T any] struct {
	Match      func(T, string) bool
	InCategory func(T, string) bool
	Sentinel   string
	// Counter — подпись счётчика после числа, например "chamado(s) encontrado(s)".
	Counter string
}

func New[T any](opts Options[T]) *Engine[T] {
	return &Engine[T]{
		match:      opts.Match,
		inCategory: opts.InCategory,
		sentinel:   opts.Sentinel,
		counter:    opts.Counter,
		category:   opts.Sentinel,
	}
}

// Tickets — поиск по тикетам с фильтром по приоритету ("Todas" — все).
func Tickets() *Engine[model.Ticket] {
	return New(Options[model.Ticket]{
		Match:      service.TicketMatches,
		InCategory: service.TicketHasPriority,
		Sentinel:   model.PriorityAll,
		Counter:    "chamado(s) encontrado(s)",
	})
}

// UserVariantAll — значение фильтра по типу пользователя «все».
const UserVariantAll = "Todos"

// Users — поиск по пользователям с фильтром по типу ("Todos" — все).
func Users() *Engine[model.User] {
	return New(Options[model.User]{
		Match: service.UserMatches,
		InCategory: func(u model.User, label string) bool {
			v, ok := model.ParseVariant(label)
			return ok && service.UserHasVariant(u, v)
		},
		Sentinel: UserVariantAll,
		Counter:  "usuário(s) encontrado(s)",
	})
}

func (e *Engine[T]) SetTerm(term string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.term = term
}

func (e *Engine[T]) Term() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.term
}

// SetCategory; пустая строка равносильна sentinel.
func (e *Engine[T]) SetCategory(c string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if strings.TrimSpace(c) == "" {
		c = e.sentinel
	}
	e.category = c
}

func (e *Engine[T]) Category() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.category
}

// Clear сбрасывает и строку поиска, и категорию.
func (e *Engine[T]) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.term = ""
	e.category = e.sentinel
}

// Apply возвращает отфильтрованную копию all и запоминает её размер для Counter.
func (e *Engine[T]) Apply(all []T) []T {
	e.mu.Lock()
	defer e.mu.Unlock()

	term := strings.TrimSpace(e.term)
	useCategory := e.inCategory != nil && !strings.EqualFold(e.category, e.sentinel)

	out := make([]T, 0, len(all))
	for _, it := range all {
		if term != "" && !e.match(it, term) {
			continue
		}
		if useCategory && !e.inCategory(it, e.category) {
			continue
		}
		out = append(out, it)
	}
	e.last = len(out)
	return out
}

// Counter — "<n> chamado(s) encontrado(s)" для последнего Apply.
func (e *Engine[T]) Counter() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fmt.Sprintf("%d %s", e.last, e.counter)
}
