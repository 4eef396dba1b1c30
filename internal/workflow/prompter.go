// Пакет workflow — сценарии работы оператора со списками тикетов и
// пользователей: поиск, выбор, просмотр, редактирование, удаление.
// Взаимодействие с оператором идёт через Prompter; сообщения для
// оператора формируются здесь, сервисы возвращают только bool и Outcome.
package workflow

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Prompter — диалоги с оператором. Confirm блокирует до ответа.
type Prompter interface {
	Warn(title, message string)
	Error(title, message string)
	Info(title, message string)
	Confirm(title, message string) bool
}

var (
	// ErrBusy — предыдущая операция ещё выполняется; сеть не трогали.
	ErrBusy = errors.New("workflow: another operation is in progress")
	// ErrNoSelection — действие требует выбранной записи.
	ErrNoSelection = errors.New("workflow: nothing selected")
	// ErrDeclined — оператор не подтвердил действие.
	ErrDeclined = errors.New("workflow: declined by operator")
	// ErrFailed — сервис вернул неуспех; оператор уже получил сообщение.
	ErrFailed = errors.New("workflow: operation failed")
	// ErrClosed — форма уже закрыта.
	ErrClosed = errors.New("workflow: form is closed")
)

// flight не даёт запустить вторую операцию, пока идёт первая.
type flight struct {
	busy atomic.Bool
}

func (f *flight) begin() bool {
	return f.busy.CompareAndSwap(false, true)
}

func (f *flight) end() {
	f.busy.Store(false)
}

// Busy — идёт ли сейчас операция (для блокировки кнопок в интерфейсе).
func (f *flight) Busy() bool {
	return f.busy.Load()
}

// Message — одно сообщение, показанное через RecordingPrompter.
type Message struct {
	Kind    string
	Title   string
	Message string
}

// RecordingPrompter запоминает сообщения и отвечает на Confirm
// заранее заданным решением. Используется TUI (подтверждение уже получено
// в собственном диалоге) и тестами.
type RecordingPrompter struct {
	mu       sync.Mutex
	Answer   bool
	Messages []Message
	Confirms []Message
}

func NewRecordingPrompter(answer bool) *RecordingPrompter {
	return &RecordingPrompter{Answer: answer}
}

func (p *RecordingPrompter) add(kind, title, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Messages = append(p.Messages, Message{Kind: kind, Title: title, Message: msg})
}

func (p *RecordingPrompter) Warn(title, msg string)  { p.add("warn", title, msg) }
func (p *RecordingPrompter) Error(title, msg string) { p.add("error", title, msg) }
func (p *RecordingPrompter) Info(title, msg string)  { p.add("info", title, msg) }

func (p *RecordingPrompter) Confirm(title, msg string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Confirms = append(p.Confirms, Message{Kind: "confirm", Title: title, Message: msg})
	return p.Answer
}

// Last — последнее сообщение (не считая Confirm).
func (p *RecordingPrompter) Last() (Message, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Messages) == 0 {
		return Message{}, false
	}
	return p.Messages[len(p.Messages)-1], true
}

// Drain возвращает накопленные сообщения и очищает их.
func (p *RecordingPrompter) Drain() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.Messages
	p.Messages = nil
	p.Confirms = nil
	return out
}
