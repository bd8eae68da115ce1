// Package session keeps the live instances of a server in memory.
//
// A Manager hands out random IDs, tracks when each instance was last used,
// and closes instances when they idle past the timeout, when the manager is
// full (least recently used first), or when one address opens too many:
//
//	m := session.NewManager[*server.Instance](session.DefaultConfig(), logger)
//	defer m.Stop()
//
//	id, inst, err := m.Create(ip, func(id string) (*server.Instance, error) {
//	    return server.NewInstance(id, ...)
//	})
//	inst, ok := m.Get(id)
//
// Nothing is persisted; a restart starts from an empty manager.
package session
