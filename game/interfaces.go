package game

// Conn is one live client connection as the game logic sees it. Send must
// never block; the websocket layer buffers and drops on overflow.
type Conn interface {
	ID() string
	Send(event string, data interface{})
}

// UserStore resolves players and pushes presence changes. Implementations
// must swallow their own failures; the lobby never checks for errors here.
type UserStore interface {
	PlayerExists(username string) bool
	SetPresence(username, status string)
}

// MatchRecorder persists a finished match result.
type MatchRecorder interface {
	RecordMatchResult(player1, player2 string, ranked bool, score1, score2 int)
}

// PracticeStarter receives "join-game" requests for the non-ranked practice
// mode. The lobby ignores those requests when no starter is configured.
type PracticeStarter interface {
	StartPractice(conn Conn, username string)
}
