//go:build !windows

package accessibility

import "selection-hook/messages"

// stubProvider satisfies Provider on platforms without an accessibility
// implementation; every strategy falls through.
type stubProvider struct{}

func newPlatformProvider() Provider { return stubProvider{} }

func (stubProvider) Bind() error { return nil }
func (stubProvider) Unbind()     {}

func (stubProvider) TreeSelection(Window, *messages.SelectionResult) (Role, bool) {
	return RoleUnknown, false
}

func (stubProvider) FocusedControlSelection(Window, *messages.SelectionResult) bool {
	return false
}

func (stubProvider) LegacySelection(Window, *messages.SelectionResult) bool {
	return false
}
