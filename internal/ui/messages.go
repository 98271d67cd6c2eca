package ui

// pagerDoneMsg is sent when the ov pager exits and the terminal is restored
type pagerDoneMsg struct {
	err error
}
