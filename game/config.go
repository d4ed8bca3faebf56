package game

import "time"

// Config carries the fixed gameplay tuning. Defaults match the classic
// 500x800 table.
type Config struct {
	CanvasWidth  float64
	CanvasHeight float64
	BallRadius   float64
	PaddleWidth  float64
	PaddleHeight float64

	// WallInset is the playable margin: paddle centers live on
	// [WallInset, CanvasWidth-WallInset] and the paddles sit WallInset
	// away from their wall.
	WallInset float64

	PaddleStep       float64
	InitialBallSpeed float64
	MaxBallSpeed     float64
	HitsPerSpeedUp   int
	WinScore         int

	FrameRate float64

	// MatchStartDelay is the pre-game pause between "matchmakingfound"
	// and the first canvas payload, giving clients time to transition.
	MatchStartDelay time.Duration

	// LaunchDelayTicks / RelaunchDelayTicks delay the ball launch at
	// match start and after each point, measured in ticks so a cancelled
	// match can never apply a stale launch.
	LaunchDelayTicks   int64
	RelaunchDelayTicks int64
}

func DefaultConfig() Config {
	return Config{
		CanvasWidth:        500,
		CanvasHeight:       800,
		BallRadius:         10,
		PaddleWidth:        100,
		PaddleHeight:       20,
		WallInset:          50,
		PaddleStep:         10,
		InitialBallSpeed:   5,
		MaxBallSpeed:       16,
		HitsPerSpeedUp:     6,
		WinScore:           7,
		FrameRate:          60,
		MatchStartDelay:    5 * time.Second,
		LaunchDelayTicks:   120,
		RelaunchDelayTicks: 60,
	}
}

// TickPeriod is the wall-clock duration of one simulation tick.
func (c Config) TickPeriod() time.Duration {
	return time.Duration(float64(time.Second) / c.FrameRate)
}
