package countdown

import "fyne.io/fyne/v2"

type keyAction int

const (
	keyNone keyAction = iota
	keyToggle
	keyReset
)

// actionForKey maps the window shortcuts: Space starts or pauses, R resets.
func actionForKey(name fyne.KeyName) keyAction {
	switch name {
	case fyne.KeySpace:
		return keyToggle
	case fyne.KeyR:
		return keyReset
	default:
		return keyNone
	}
}
