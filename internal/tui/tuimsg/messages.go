// Package tuimsg holds the messages scenes send to the root model.
package tuimsg

import (
	"github.com/rgehrsitz/itrgo/internal/domain"
)

// SaveProfileMsg asks the root model to persist a profile
type SaveProfileMsg struct {
	Profile domain.Profile
}

// ProfileLoadedMsg carries the stored profile; Profile is nil when none exists
type ProfileLoadedMsg struct {
	Profile *domain.Profile
	Err     error
}

// ProfileSavedMsg signals a save operation has finished
type ProfileSavedMsg struct {
	Profile *domain.Profile
	Err     error
}

// DeleteProfileMsg asks the root model to clear the store
type DeleteProfileMsg struct{}

// ProfileDeletedMsg signals a delete operation has finished
type ProfileDeletedMsg struct {
	Err error
}

// DumpStoreMsg asks the root model for a JSON dump of the store
type DumpStoreMsg struct{}

// StoreDumpedMsg carries the JSON dump
type StoreDumpedMsg struct {
	JSON string
	Err  error
}

// ToggleThemeMsg asks the root model to switch between light and dark
type ToggleThemeMsg struct{}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
