package tui

// Data loading messages.
type transactionsRefreshedMsg struct {
	err error
}

type categoriesLoadedMsg struct {
	err error
}

// Mutation completion.
type mutationDoneMsg struct {
	err error
}

// Session handling.
type sessionExpiredMsg struct{}

// Transient status line expiry.
type clearStatusMsg struct{}
