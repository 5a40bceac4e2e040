// Package tui provides the terminal timeline viewer for daisen.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal     Mode = iota // Timeline navigation
	ModeFilter                 // Where-filter input
	ModeComponents             // Component picker
	ModeHelp                   // Help overlay
	ModeDetail                 // Task detail view
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeFilter:
		return "filter"
	case ModeComponents:
		return "components"
	case ModeHelp:
		return "help"
	case ModeDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeFilter, ModeComponents:
		return true
	case ModeNormal, ModeHelp, ModeDetail:
		return false
	}
	return false
}

// AcceptsPointer returns true if mouse input drives the timeline.
func (m Mode) AcceptsPointer() bool {
	return m == ModeNormal
}
