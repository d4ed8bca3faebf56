package game

import "sync"

// Registry maps logical usernames to their live connections. A user may
// hold several connections at once (multiple tabs); the most recently
// registered one is the active connection for gameplay addressing.
type Registry struct {
	mu     sync.Mutex
	byUser map[string][]Conn
	byConn map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string][]Conn),
		byConn: make(map[string]string),
	}
}

// Register binds conn to username. Re-registering the same connection is a
// no-op; a new connection for the same user becomes the active one.
func (r *Registry) Register(username string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.byConn[conn.ID()]; ok && owner == username {
		return
	}
	r.byUser[username] = append(r.byUser[username], conn)
	r.byConn[conn.ID()] = username
}

// Resolve returns the active connection for username.
func (r *Registry) Resolve(username string) (Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns := r.byUser[username]
	if len(conns) == 0 {
		return nil, false
	}
	return conns[len(conns)-1], true
}

// Lookup returns the username a connection is registered under, without
// removing anything.
func (r *Registry) Lookup(connID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	username, ok := r.byConn[connID]
	return username, ok
}

// Unregister removes the connection and reports the affected username and
// how many of their connections remain.
func (r *Registry) Unregister(connID string) (username string, remaining int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	username, ok = r.byConn[connID]
	if !ok {
		return "", 0, false
	}
	delete(r.byConn, connID)

	conns := r.byUser[username]
	kept := conns[:0]
	for _, c := range conns {
		if c.ID() != connID {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		delete(r.byUser, username)
	} else {
		r.byUser[username] = kept
	}
	return username, len(kept), true
}
