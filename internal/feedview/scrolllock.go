package feedview

// ScrollLock is the explicit form of the original's document-level scroll
// flag: while an expanded-comments overlay is open, feed scrolling is
// suspended. Single holder at a time; only the holder can release.
type ScrollLock struct {
	holder string
}

// Acquire takes the lock for id. Re-acquiring by the current holder is fine;
// a second holder is refused.
func (l *ScrollLock) Acquire(id string) bool {
	if l.holder != "" && l.holder != id {
		return false
	}
	l.holder = id
	return true
}

// Release frees the lock if held by id. Releases by non-holders are ignored
// so every exit path can call it unconditionally.
func (l *ScrollLock) Release(id string) {
	if l.holder == id {
		l.holder = ""
	}
}

func (l *ScrollLock) Locked() bool { return l.holder != "" }

func (l *ScrollLock) Holder() string { return l.holder }
