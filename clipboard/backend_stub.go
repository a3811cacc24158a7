//go:build !windows

package clipboard

import "hash/fnv"

// stubBackend approximates the platform backend where no clipboard
// sequence counter or keystroke synthesis exists: the sequence is a hash
// of the current content, so it still changes whenever content changes.
type stubBackend struct{}

// NewSystemBackend returns the platform clipboard backend.
func NewSystemBackend() Backend { return stubBackend{} }

func (stubBackend) Read() (string, bool) { return Read() }

func (stubBackend) Write(text string) bool { return Write(text) == nil }

func (stubBackend) Sequence() uint64 {
	text, ok := Read()
	if !ok {
		return 0
	}
	h := fnv.New64a()
	h.Write([]byte(text))
	return h.Sum64()
}

func (stubBackend) SendCopy(CopyKey) {}

func (stubBackend) CopyChordHeld() bool { return false }

func (stubBackend) CtrlHeld() bool { return false }
