// Пакет selection — конечный автомат выбора строки в списке.
//
// NoSelection ⇄ OneSelected. Действия View/Edit/Delete доступны только
// в OneSelected. Перезагрузка списка сбрасывает выбор.
package selection

import "sync"

type State int

const (
	NoSelection State = iota
	OneSelected
)

func (s State) String() string {
	if s == OneSelected {
		return "one_selected"
	}
	return "no_selection"
}

// Action — действие над выбранной записью.
type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// allowedActions — матрица допустимых действий для каждого состояния.
var allowedActions = map[State]map[Action]bool{
	NoSelection: {},
	OneSelected: {ActionView: true, ActionEdit: true, ActionDelete: true},
}

// Machine хранит не более одной выбранной записи.
type Machine[T any] struct {
	mu       sync.RWMutex
	state    State
	selected *T
}

func New[T any]() *Machine[T] {
	return &Machine[T]{state: NoSelection}
}

// Select выбирает запись (копия хранится внутри).
func (m *Machine[T]) Select(item T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = &item
	m.state = OneSelected
}

// Clear — переход в NoSelection.
func (m *Machine[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = nil
	m.state = NoSelection
}

// Selected возвращает копию выбранной записи.
func (m *Machine[T]) Selected() (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.selected == nil {
		var zero T
		return zero, false
	}
	return *m.selected, true
}

func (m *Machine[T]) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// ActionsEnabled — true, если доступна хотя бы одна операция.
func (m *Machine[T]) ActionsEnabled() bool {
	return m.State() == OneSelected
}

func (m *Machine[T]) Enabled(a Action) bool {
	return allowedActions[m.State()][a]
}
