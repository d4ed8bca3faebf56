package game

import "github.com/pongarena/pongarena-backend/physics"

// Outbound event names.
const (
	EventMatchFound         = "matchmakingfound"
	EventCanvas             = "canvas"
	EventUpdate             = "update-game"
	EventFinished           = "finished"
	EventOpponentDisconnect = "opponentdisconnect"
	EventGameStop           = "game-stop"
)

type MatchFoundEvent struct {
	Matchmaking bool   `json:"matchmaking"`
	Opponent    string `json:"opponent"`
}

type CanvasSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type PaddleSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type BallSize struct {
	Radius float64 `json:"radius"`
}

// CanvasEvent is the one-time match initialization payload. Both players
// receive the same one.
type CanvasEvent struct {
	Canvas       CanvasSize `json:"canvas"`
	FrameRate    float64    `json:"frameRate"`
	TopPaddle    PaddleSize `json:"topPaddle"`
	BottomPaddle PaddleSize `json:"bottomPaddle"`
	Ball         BallSize   `json:"ball"`
}

type ScoreView struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// UpdateEvent is the per-tick snapshot. Each recipient sees itself as the
// bottom paddle, so player 2 gets mirrored coordinates and swapped scores.
type UpdateEvent struct {
	BallPos         physics.Vec2 `json:"ballPos"`
	TopPaddlePos    physics.Vec2 `json:"topPaddlePos"`
	BottomPaddlePos physics.Vec2 `json:"bottomPaddlePos"`
	Username        string       `json:"username"`
	Score           ScoreView    `json:"score"`
}

type FinishedEvent struct {
	Winner       string `json:"winner"`
	Player1      string `json:"player1"`
	Player2      string `json:"player2"`
	Player1Score int    `json:"player1_score"`
	Player2Score int    `json:"player2_score"`
	IWin         bool   `json:"iWin"`
}

type GameStopEvent struct {
	Opponent string `json:"opponent"`
}
