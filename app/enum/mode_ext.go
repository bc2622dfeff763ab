package enum

// ModeFromPresence maps marker file presence to a mode.
func ModeFromPresence(exists bool) Mode {
	if exists {
		return ModeEnabled
	}
	return ModeDisabled
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == ModeEnabled {
		return ModeDisabled
	}
	return ModeEnabled
}

// Enabled returns true for ModeEnabled.
func (m Mode) Enabled() bool {
	return m == ModeEnabled
}
