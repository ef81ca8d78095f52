package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// ScrollAction moves the viewport without a key, e.g. the mouse wheel
type ScrollAction struct {
	Delta int
}

func (a ScrollAction) Type() string { return "scroll" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type SubmitSearchAction struct {
	Query string
}

func (a SubmitSearchAction) Type() string { return "submit_search" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Pagination actions
type LoadMoreAction struct{}

func (a LoadMoreAction) Type() string { return "load_more" }

type RetryAction struct{}

func (a RetryAction) Type() string { return "retry" }

// Hit actions
type OpenAction struct {
	Discussion bool // open the HN comments instead of the story
}

func (a OpenAction) Type() string { return "open" }

type CopyURLAction struct{}

func (a CopyURLAction) Type() string { return "copy_url" }

type ShowInfoAction struct{}

func (a ShowInfoAction) Type() string { return "show_info" }

type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

// Other actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
