package session

// HeldLocks reports how many session locks the manager currently tracks.
func (m *Manager) HeldLocks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
