// Пакет tui — терминальный интерфейс менеджера поверх пакета workflow:
// вход, вкладки тикетов, пользователей и отчётов, формы и диалоги.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/psds-microservice/suptec-client/internal/logging"
	"github.com/psds-microservice/suptec-client/internal/workflow"
)

// Authenticator — то, что TUI нужно от сессии.
type Authenticator interface {
	Login(ctx context.Context, email, password string) bool
	Logout()
	DisplayName() string
	Authenticated() bool
	LastStatus() int
}

// Deps — зависимости интерфейса. Prompt должен быть тем же
// RecordingPrompter, с которым созданы Tickets и Users, и отвечать true:
// подтверждение TUI спрашивает в собственном диалоге.
type Deps struct {
	Session Authenticator
	Tickets *workflow.TicketWorkflow
	Users   *workflow.UserWorkflow
	Prompt  *workflow.RecordingPrompter
	Log     *slog.Logger
	Now     func() time.Time
}

type screen int

const (
	screenLogin screen = iota
	screenMain
)

// Tab — вкладка главного экрана.
type Tab int

const (
	TabTickets Tab = iota
	TabUsers
	TabReport
)

var tabNames = []string{"Chamados", "Usuários", "Relatórios"}

// Model — корневая модель bubbletea.
type Model struct {
	deps Deps
	keys KeyMap
	log  *slog.Logger

	screen        screen
	tab           Tab
	width, height int

	email      textinput.Model
	password   textinput.Model
	loginFocus int
	loginError string

	// Поиск: по строке на вкладку; searching — поле ввода в фокусе.
	search      [2]textinput.Model
	searching   bool
	debounceSeq int

	cursor [2]int

	busy   bool
	status statusLine
	dialog *dialog
	form   *formEditor
}

type statusLine struct {
	kind string
	text string
}

// New создаёт модель на экране входа.
func New(deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	email := textinput.New()
	email.Placeholder = "email@empresa.com"
	email.Prompt = ""
	email.Focus()
	password := textinput.New()
	password.Placeholder = "senha"
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword

	m := Model{
		deps:     deps,
		keys:     DefaultKeyMap,
		log:      logging.Component(deps.Log, "tui"),
		email:    email,
		password: password,
	}
	for i := range m.search {
		s := textinput.New()
		s.Prompt = "Buscar: "
		s.Placeholder = "título, usuário, email..."
		m.search[i] = s
	}
	if deps.Session != nil && deps.Session.Authenticated() {
		m.screen = screenMain
	}
	return m
}

// Init — если сессия уже есть, сразу загружаем списки.
func (m Model) Init() tea.Cmd {
	if m.screen == screenMain {
		return m.reloadAll()
	}
	return textinput.Blink
}

// Сообщения результатов фоновых операций.
type (
	loginDoneMsg struct{ ok bool }
	loadedMsg    struct{ msgs []workflow.Message }
	opDoneMsg    struct {
		err  error
		msgs []workflow.Message
	}
	formOpenedMsg struct {
		editor *formEditor
		err    error
		msgs   []workflow.Message
	}
	formDoneMsg struct {
		err  error
		msgs []workflow.Message
	}
	debounceMsg struct {
		seq int
		tab Tab
	}
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case loginDoneMsg:
		m.busy = false
		m.log.Info("login finished", "ok", msg.ok)
		if !msg.ok {
			m.loginError = loginFailure(m.deps.Session.LastStatus())
			m.password.SetValue("")
			return m, nil
		}
		m.loginError = ""
		m.screen = screenMain
		m.tab = TabTickets
		m.setStatus("info", "Bem-vindo, "+m.deps.Session.DisplayName()+"!")
		return m, m.reloadAll()

	case loadedMsg:
		m.busy = false
		m.cursor = [2]int{}
		m.showMessages(msg.msgs)
		return m, nil

	case opDoneMsg:
		m.busy = false
		m.clampCursor()
		m.showMessages(msg.msgs)
		return m, nil

	case formOpenedMsg:
		m.busy = false
		m.showMessages(msg.msgs)
		if msg.err == nil && msg.editor != nil {
			m.form = msg.editor
			return m, m.form.focusCmd()
		}
		return m, nil

	case formDoneMsg:
		return m.handleFormDone(msg)

	case debounceMsg:
		if msg.seq == m.debounceSeq {
			m.applySearch(msg.tab)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.dialog != nil {
			return m.handleDialogKeys(msg)
		}
		if m.screen == screenLogin {
			return m.handleLoginKeys(msg)
		}
		if m.form != nil {
			return m.handleFormKeys(msg)
		}
		if m.searching {
			return m.handleSearchKeys(msg)
		}
		return m.handleMainKeys(msg)
	}

	// Остальное (мигание курсора) — активному полю ввода.
	var cmd tea.Cmd
	switch {
	case m.screen == screenLogin:
		if m.loginFocus == 0 {
			m.email, cmd = m.email.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
	case m.form != nil:
		cmd = m.form.update(msg)
	case m.searching && m.tab != TabReport:
		m.search[m.tab], cmd = m.search[m.tab].Update(msg)
	}
	return m, cmd
}

func loginFailure(status int) string {
	switch {
	case status < 0:
		return "Não foi possível contactar o servidor."
	case status == 401 || status == 403:
		return "Email ou senha inválidos."
	default:
		return "Falha no login. Verifique os dados e tente novamente."
	}
}

func (m *Model) setStatus(kind, text string) {
	m.status = statusLine{kind: kind, text: text}
}

// showMessages: ошибки — в диалог, остальное — первой строкой в статус.
func (m *Model) showMessages(msgs []workflow.Message) {
	for _, msg := range msgs {
		if msg.Kind == "error" {
			m.dialog = messageDialog(msg.Kind, msg.Title, msg.Message)
			continue
		}
		first, _, _ := strings.Cut(msg.Message, "\n")
		m.setStatus(msg.Kind, first)
	}
}

func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.loginFocus = 1 - m.loginFocus
		return m, m.focusLogin()
	case tea.KeyEnter:
		if m.loginFocus == 0 {
			m.loginFocus = 1
			return m, m.focusLogin()
		}
		email := strings.TrimSpace(m.email.Value())
		password := m.password.Value()
		if email == "" || password == "" {
			m.loginError = "Preencha email e senha."
			return m, nil
		}
		m.busy = true
		m.loginError = ""
		sess := m.deps.Session
		return m, func() tea.Msg {
			return loginDoneMsg{ok: sess.Login(context.Background(), email, password)}
		}
	}
	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusLogin() tea.Cmd {
	if m.loginFocus == 0 {
		m.password.Blur()
		return m.email.Focus()
	}
	m.email.Blur()
	return m.password.Focus()
}

// reloadAll загружает тикеты и пользователей (нужны и для отчёта).
func (m *Model) reloadAll() tea.Cmd {
	m.busy = true
	d := m.deps
	return func() tea.Msg {
		ctx := context.Background()
		_ = d.Tickets.Reload(ctx)
		_ = d.Users.Reload(ctx)
		return loadedMsg{msgs: d.Prompt.Drain()}
	}
}

func (m *Model) logout() {
	m.deps.Session.Logout()
	m.screen = screenLogin
	m.form = nil
	m.dialog = nil
	m.searching = false
	m.loginFocus = 0
	m.password.SetValue("")
	m.status = statusLine{}
	m.focusLogin()
}

func (m Model) handleMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		return m, nil
	case key.Matches(msg, m.keys.Tab1):
		m.tab = TabTickets
		return m, nil
	case key.Matches(msg, m.keys.Tab2):
		m.tab = TabUsers
		return m, nil
	case key.Matches(msg, m.keys.Tab3):
		m.tab = TabReport
		return m, nil
	}
	if m.busy {
		m.setStatus("warn", "Aguarde a operação em andamento.")
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadAll()
	case key.Matches(msg, m.keys.Logout):
		m.logout()
		return m, nil
	}
	if m.tab == TabReport {
		return m, nil
	}
	return m.handleListKeys(msg)
}
