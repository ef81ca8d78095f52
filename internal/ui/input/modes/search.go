package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"hnsearch/internal/ui/input/types"
)

// SearchMode edits the query. The text survives a submit so the next
// search starts from the previous one.
type SearchMode struct {
	textInput *textinput.Model
	previous  string
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{textInput: ti}
}

func (m *SearchMode) Name() string {
	return "search"
}

func (m *SearchMode) Enter(ctx types.Context) []types.Action {
	m.previous = m.textInput.Value()
	m.textInput.Prompt = "" // Prompt is handled in the UI layer
	m.textInput.Focus()
	m.textInput.CursorEnd()
	return nil
}

func (m *SearchMode) Exit(ctx types.Context) []types.Action {
	m.textInput.Blur()
	return nil
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{}}, true
	case tea.KeyEsc:
		m.textInput.SetValue(m.previous)
		return []types.Action{
			types.CancelTextAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case tea.KeyEnter:
		return []types.Action{
			types.SubmitSearchAction{Query: m.textInput.Value()},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	default:
		// Let the handler feed the key to the text input
		return nil, false
	}
}
