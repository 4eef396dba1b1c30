package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap — привязки клавиш главного экрана и форм.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	NextTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding

	Search  key.Binding
	Filter  key.Binding // Циклически меняет фильтр по приоритету / типу.
	Clear   key.Binding
	Select  key.Binding
	View    key.Binding
	Edit    key.Binding
	Delete  key.Binding
	New     key.Binding
	Reload  key.Binding
	Logout  key.Binding
	Quit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding

	// Формы.
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Toggle    key.Binding
	Left      key.Binding
	Right     key.Binding
}

var DefaultKeyMap = KeyMap{
	Up:   key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "acima")),
	Down: key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "abaixo")),

	NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "próxima aba")),
	Tab1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "chamados")),
	Tab2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "usuários")),
	Tab3:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "relatórios")),

	Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "buscar")),
	Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filtro")),
	Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "limpar")),
	Select:  key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("espaço", "selecionar")),
	View:    key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter", "ver")),
	Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "editar")),
	Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "excluir")),
	New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "novo")),
	Reload:  key.NewBinding(key.WithKeys("r", "f5"), key.WithHelp("r", "atualizar")),
	Logout:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "sair da conta")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "sair")),
	Confirm: key.NewBinding(key.WithKeys("y", "s", "enter"), key.WithHelp("s", "sim")),
	Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "não")),

	NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "próximo campo")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "campo anterior")),
	Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "salvar")),
	Toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("espaço", "marcar")),
	Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "opção anterior")),
	Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "próxima opção")),
}
