package game

import "sync"

type fakeEvent struct {
	name string
	data interface{}
}

type fakeConn struct {
	id string

	mu     sync.Mutex
	events []fakeEvent
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(event string, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, fakeEvent{name: event, data: data})
}

func (c *fakeConn) named(event string) []fakeEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []fakeEvent
	for _, e := range c.events {
		if e.name == event {
			out = append(out, e)
		}
	}
	return out
}

func (c *fakeConn) last(event string) (fakeEvent, bool) {
	evs := c.named(event)
	if len(evs) == 0 {
		return fakeEvent{}, false
	}
	return evs[len(evs)-1], true
}

func (c *fakeConn) count(event string) int {
	return len(c.named(event))
}

type fakeUsers struct {
	mu       sync.Mutex
	presence map[string]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{presence: make(map[string]string)}
}

func (u *fakeUsers) PlayerExists(username string) bool { return true }

func (u *fakeUsers) SetPresence(username, status string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.presence[username] = status
}

func (u *fakeUsers) presenceOf(username string) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.presence[username]
}

type recordedResult struct {
	player1, player2 string
	ranked           bool
	score1, score2   int
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedResult
}

func (r *fakeRecorder) RecordMatchResult(player1, player2 string, ranked bool, score1, score2 int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedResult{player1, player2, ranked, score1, score2})
}

func (r *fakeRecorder) results() []recordedResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedResult(nil), r.calls...)
}
