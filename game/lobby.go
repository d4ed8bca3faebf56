package game

import (
	"log"
	"sync"
	"time"

	"github.com/pongarena/pongarena-backend/models"
)

type queueEntry struct {
	username string
	league   string
}

type challengeEntry struct {
	id         string
	challenger string
	opponent   string
}

// Lobby is the matchmaking coordinator. It owns the wait queue, the
// challenge table and the active-session table; every mutation of those
// goes through its mutex. Match world state is owned by each match's own
// tick loop and is never touched here.
type Lobby struct {
	mu         sync.Mutex
	registry   *Registry
	queue      []queueEntry
	challenges map[string]*challengeEntry
	sessions   map[string]*Match

	users    UserStore
	recorder MatchRecorder
	practice PracticeStarter
	cfg      Config

	// schedule defers a callback; replaced in tests.
	schedule func(time.Duration, func())
}

func NewLobby(users UserStore, recorder MatchRecorder, cfg Config) *Lobby {
	return &Lobby{
		registry:   NewRegistry(),
		challenges: make(map[string]*challengeEntry),
		sessions:   make(map[string]*Match),
		users:      users,
		recorder:   recorder,
		cfg:        cfg,
		schedule:   func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// SetPractice wires the collaborator that handles "join-game" requests.
func (l *Lobby) SetPractice(p PracticeStarter) {
	l.practice = p
}

// Register binds a connection to a logical player and marks them in-game.
// Unknown usernames are ignored.
func (l *Lobby) Register(username string, conn Conn) {
	if username == "" {
		return
	}
	if l.users != nil && !l.users.PlayerExists(username) {
		log.Printf("[game] register ignored, unknown player %q", username)
		return
	}
	l.registry.Register(username, conn)
	l.setPresence(username, models.StatusInGame)
	log.Printf("[game] registered %s", username)
}

// Enqueue puts a player on the league wait queue and pairs the two
// earliest entries of that league when possible. Duplicate enqueues,
// unknown usernames and players with an open challenge are no-ops: a
// user is in at most one of the queue, the challenge table and an
// active session.
func (l *Lobby) Enqueue(username, league string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.registry.Resolve(username); !ok {
		return
	}
	if _, inMatch := l.sessions[username]; inMatch {
		return
	}
	for _, e := range l.challenges {
		if e.challenger == username {
			return
		}
	}
	for _, e := range l.queue {
		if e.username == username {
			return
		}
	}
	l.queue = append(l.queue, queueEntry{username: username, league: league})

	var pair []queueEntry
	for _, e := range l.queue {
		if e.league != league {
			continue
		}
		pair = append(pair, e)
		if len(pair) == 2 {
			break
		}
	}
	if len(pair) < 2 {
		return
	}
	l.removeFromQueue(pair[0].username)
	l.removeFromQueue(pair[1].username)
	l.pairLocked(pair[0].username, pair[1].username, true)
}

// CancelQueue removes the player's queue entry if present.
func (l *Lobby) CancelQueue(username string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.removeFromQueue(username)
}

// Challenge is the two-phase direct invitation: the first call with an id
// creates the entry, the second call with the same id is the invited
// player's acceptance and promotes both into a match. An open challenge
// supersedes the challenger's wait-queue entry, and acceptance pulls both
// players out of the queue before the session is created.
func (l *Lobby) Challenge(id, challenger, opponent string) {
	if id == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.challenges[id]
	if !ok {
		if _, exists := l.registry.Resolve(challenger); !exists {
			return
		}
		if _, busy := l.sessions[challenger]; busy {
			return
		}
		l.removeFromQueue(challenger)
		l.challenges[id] = &challengeEntry{id: id, challenger: challenger, opponent: opponent}
		return
	}

	delete(l.challenges, id)

	if _, busy := l.sessions[e.challenger]; busy {
		return
	}
	if _, busy := l.sessions[e.opponent]; busy {
		return
	}
	l.removeFromQueue(e.challenger)
	l.removeFromQueue(e.opponent)
	l.pairLocked(e.challenger, e.opponent, false)
}

// HandleMove routes a paddle input to the player's active match, if any.
func (l *Lobby) HandleMove(username string, dir float64) {
	l.mu.Lock()
	m := l.sessions[username]
	l.mu.Unlock()
	if m != nil {
		m.Move(username, dir)
	}
}

// JoinPractice hands the connection to the practice-mode collaborator.
func (l *Lobby) JoinPractice(conn Conn, username string) {
	if l.practice != nil {
		l.practice.StartPractice(conn, username)
	}
}

// Disconnect tears down everything the connection's user participates in:
// queue entry, challenges, and the active match (cancelled, opponent wins
// by forfeit). The registry entry is removed last so lookups during
// cleanup still resolve the user.
func (l *Lobby) Disconnect(connID string) {
	username, ok := l.registry.Lookup(connID)
	if !ok {
		return
	}

	l.mu.Lock()
	l.removeFromQueue(username)
	for id, e := range l.challenges {
		if e.challenger == username || e.opponent == username {
			delete(l.challenges, id)
		}
	}
	if m, inMatch := l.sessions[username]; inMatch {
		m.Cancel()
		_, oppConn := m.opponentOf(username)
		oppConn.Send(EventOpponentDisconnect, nil)
		oppConn.Send(EventGameStop, GameStopEvent{Opponent: username})
		delete(l.sessions, m.p1.username)
		delete(l.sessions, m.p2.username)
		log.Printf("[game] match %s cancelled, %s disconnected", m.id, username)
	}
	l.mu.Unlock()

	name, remaining, ok := l.registry.Unregister(connID)
	if !ok {
		return
	}
	if remaining == 0 {
		l.setPresence(name, models.StatusOffline)
	} else {
		l.setPresence(name, models.StatusOnline)
	}
	log.Printf("[game] unregistered %s (%d connections left)", name, remaining)
}

// pairLocked notifies both players, creates the session and schedules the
// delayed start. Connections are resolved here rather than carried from
// enqueue time, so a player who reconnected while waiting gets the match
// on their newest tab. Callers hold l.mu.
func (l *Lobby) pairLocked(a, b string, ranked bool) {
	aConn, ok := l.registry.Resolve(a)
	if !ok {
		return
	}
	bConn, ok := l.registry.Resolve(b)
	if !ok {
		return
	}

	aConn.Send(EventMatchFound, MatchFoundEvent{Matchmaking: true, Opponent: b})
	bConn.Send(EventMatchFound, MatchFoundEvent{Matchmaking: true, Opponent: a})

	m := newMatch(ranked,
		slot{username: a, conn: aConn},
		slot{username: b, conn: bConn},
		l.cfg, l.matchFinished)
	l.sessions[a] = m
	l.sessions[b] = m
	log.Printf("[game] match %s: %s vs %s (ranked=%v)", m.id, a, b, ranked)

	l.schedule(l.cfg.MatchStartDelay, func() { l.launch(m) })
}


// launch starts the match loop after the pre-game delay, unless the match
// was cancelled while waiting.
func (l *Lobby) launch(m *Match) {
	if m.Status() != StatusStarting {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[game] match %s: tick loop panic: %v", m.id, r)
			}
		}()
		m.Run()
	}()
}

// matchFinished runs on the match's own goroutine when a side reaches the
// win score.
func (l *Lobby) matchFinished(m *Match) {
	winner := m.p1.username
	if m.p2.score >= l.cfg.WinScore {
		winner = m.p2.username
	}

	if l.recorder != nil {
		l.recorder.RecordMatchResult(m.p1.username, m.p2.username, m.ranked, m.p1.score, m.p2.score)
	}

	m.p1.conn.Send(EventFinished, FinishedEvent{
		Winner:       winner,
		Player1:      m.p1.username,
		Player2:      m.p2.username,
		Player1Score: m.p1.score,
		Player2Score: m.p2.score,
		IWin:         m.p1.score >= l.cfg.WinScore,
	})
	m.p2.conn.Send(EventFinished, FinishedEvent{
		Winner:       winner,
		Player1:      m.p1.username,
		Player2:      m.p2.username,
		Player1Score: m.p1.score,
		Player2Score: m.p2.score,
		IWin:         m.p2.score >= l.cfg.WinScore,
	})

	l.mu.Lock()
	delete(l.sessions, m.p1.username)
	delete(l.sessions, m.p2.username)
	l.mu.Unlock()
	log.Printf("[game] match %s finished, %s won %d-%d", m.id, winner, m.p1.score, m.p2.score)
}

func (l *Lobby) removeFromQueue(username string) {
	kept := l.queue[:0]
	for _, e := range l.queue {
		if e.username != username {
			kept = append(kept, e)
		}
	}
	l.queue = kept
}

func (l *Lobby) setPresence(username, status string) {
	if l.users != nil {
		l.users.SetPresence(username, status)
	}
}
