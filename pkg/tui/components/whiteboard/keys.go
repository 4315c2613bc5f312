package whiteboard

import "github.com/charmbracelet/bubbles/v2/key"

// KeyMap lists the board bindings.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Browse    key.Binding
	Back      key.Binding
	AddCard   key.Binding
	AddRow    key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Collapse  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "row up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "row down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev card")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next card")),
		Browse:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open row")),
		Back:      key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "back")),
		AddCard:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add card")),
		AddRow:    key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add row")),
		MoveLeft:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move left")),
		MoveRight: key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move right")),
		Collapse:  key.NewBinding(key.WithKeys("space", " "), key.WithHelp("space", "collapse")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Browse, k.Back, k.AddCard, k.MoveLeft, k.MoveRight, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Browse, k.Back, k.Collapse},
		{k.AddCard, k.AddRow, k.MoveLeft, k.MoveRight},
		{k.Help, k.Quit},
	}
}
