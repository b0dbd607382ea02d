package terminal

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

const nameCharLimit = 24

type gameEngine interface {
	Setup(ctx context.Context, playerX, playerO string)
	SelectCell(ctx context.Context, cell int) error
	Restart(ctx context.Context, vsComputer bool)
	ResetScores(ctx context.Context)
	Home(ctx context.Context)
	Snapshot() tictactoe.State
}

// displayChangedMsg wakes the model after the engine updated the display.
type displayChangedMsg struct{}

// model is the root bubbletea model. It is the input adapter: it only forwards selections of
// empty cells in an active game and reads everything it draws from the Display.
type model struct {
	ctx     context.Context
	engine  gameEngine
	display *Display

	inputs [2]textinput.Model
	focus  int
	cursor int
}

func newModel(ctx context.Context, engine gameEngine, display *Display) model {
	names := engine.Snapshot().Names

	var inputs [2]textinput.Model
	for i, placeholder := range []string{entity.DefaultPlayerX, entity.DefaultPlayerO} {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = nameCharLimit
		input.Width = nameCharLimit
		inputs[i] = input
	}

	if names.X != entity.DefaultPlayerX {
		inputs[0].SetValue(names.X)
	}

	if names.O != entity.DefaultPlayerO && names.O != entity.ComputerName {
		inputs[1].SetValue(names.O)
	}

	inputs[0].Focus()

	return model{
		ctx:     ctx,
		engine:  engine,
		display: display,
		inputs:  inputs,
		cursor:  4,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForChange())
}

func (m model) waitForChange() tea.Cmd {
	changes := m.display.Changes()

	return func() tea.Msg {
		<-changes
		return displayChangedMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case displayChangedMsg:
		return m, m.waitForChange()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if m.display.snapshot().screen == tictactoe.ScreenSetup {
			return m.handleSetupKey(msg)
		}

		return m.handleGameKey(msg)
	}

	if m.display.snapshot().screen == tictactoe.ScreenSetup {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m model) handleSetupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		return m.focusInput(1 - m.focus)

	case tea.KeyEnter:
		if m.focus == 0 {
			return m.focusInput(1)
		}

		m.engine.Setup(m.ctx, m.inputs[0].Value(), m.inputs[1].Value())
		m.cursor = 4

		return m, nil
	}

	return m.updateInputs(msg)
}

func (m model) focusInput(index int) (tea.Model, tea.Cmd) {
	m.focus = index
	m.inputs[1-index].Blur()

	return m, m.inputs[index].Focus()
}

func (m model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	return m, cmd
}

func (m model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.cursor = moveCursor(m.cursor, -3)
	case "down", "j":
		m.cursor = moveCursor(m.cursor, 3)
	case "left", "h":
		if m.cursor%3 > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor%3 < 2 {
			m.cursor++
		}
	case "enter", " ":
		m.selectCell(m.cursor)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.cursor = int(key[0] - '1')
		m.selectCell(m.cursor)
	case "p":
		m.engine.Restart(m.ctx, false)
	case "c":
		m.engine.Restart(m.ctx, true)
	case "s":
		m.engine.ResetScores(m.ctx)
	case "m":
		if m.display.snapshot().homeVisible {
			m.engine.Home(m.ctx)
			return m.focusInput(0)
		}
	}

	return m, nil
}

func (m model) selectCell(cell int) {
	game := m.engine.Snapshot().Game
	if game == nil || !game.IsActive() || game.Board[cell] != entity.Empty {
		return
	}

	// the engine refuses the move itself while the computer is thinking
	_ = m.engine.SelectCell(m.ctx, cell)
}

func moveCursor(cursor, delta int) int {
	next := cursor + delta
	if next < 0 || next >= entity.BoardSize {
		return cursor
	}

	return next
}

func (m model) View() string {
	state := m.display.snapshot()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Tic-Tac-Toe"))
	sb.WriteString("\n\n")

	if state.screen == tictactoe.ScreenSetup {
		sb.WriteString(m.setupView())
	} else {
		sb.WriteString(m.gameView(state))
	}

	return sb.String()
}

func (m model) setupView() string {
	labels := []string{"Player X", "Player O"}

	fields := make([]string, 0, len(m.inputs))
	for i, input := range m.inputs {
		style := blurredStyle
		if i == m.focus {
			style = focusedStyle
		}
		fields = append(fields, labelStyle.Render(labels[i])+"\n"+style.Render(input.View()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, fields...) + "\n\n" +
		dimStyle.Render("tab switch field • enter start • esc quit")
}

func (m model) gameView(state displayState) string {
	var sb strings.Builder

	sb.WriteString(scoreLine(state))
	sb.WriteString("\n\n")
	sb.WriteString(m.boardView(state))
	sb.WriteString("\n\n")
	sb.WriteString(statusStyle.Render(state.status))
	sb.WriteString("\n\n")

	help := "arrows/hjkl move • enter mark • 1-9 mark • p vs player • c vs computer • s reset scores"
	if state.homeVisible {
		help += " • m home"
	}
	sb.WriteString(dimStyle.Render(help + " • q quit"))

	return sb.String()
}

func scoreLine(state displayState) string {
	return markXStyle.Render(state.names.X+" (X)") + " " + statusStyle.Render(strconv.Itoa(state.scores.X)) +
		dimStyle.Render("  -  ") +
		statusStyle.Render(strconv.Itoa(state.scores.O)) + " " + markOStyle.Render(state.names.O+" (O)")
}

func (m model) boardView(state displayState) string {
	rows := make([]string, 0, 3)
	for row := range 3 {
		cells := make([]string, 0, 3)
		for col := range 3 {
			cells = append(cells, m.cellView(state, row*3+col))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m model) cellView(state displayState, cell int) string {
	style := cellStyle
	switch {
	case state.highlighted[cell]:
		style = winningStyle
	case cell == m.cursor:
		style = cursorStyle
	}

	var content string
	switch state.board[cell] {
	case entity.X:
		content = markXStyle.Render(string(entity.X))
	case entity.O:
		content = markOStyle.Render(string(entity.O))
	default:
		content = cellIndexStyle.Render(strconv.Itoa(cell + 1))
	}

	return style.Render(content)
}
