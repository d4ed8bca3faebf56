package game

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pongarena/pongarena-backend/physics"
)

// Status is the lifecycle of one match session.
type Status int32

const (
	StatusStarting Status = iota
	StatusPlaying
	StatusCancelled
	StatusFinished
)

type slot struct {
	username string
	conn     Conn
	score    int
}

// moveInput is one paddle input in the acting player's own view:
// dir is +1 for move-right, -1 for move-left.
type moveInput struct {
	username string
	dir      float64
}

type world struct {
	ball         physics.Body
	topPaddle    physics.Body
	bottomPaddle physics.Body
	topWall      physics.Body
	bottomWall   physics.Body
	leftWall     physics.Body
	rightWall    physics.Body

	speed float64
	hits  int
	tick  int64

	// launchAt is the tick the pending launch fires on; 0 means no
	// launch is pending.
	launchAt   int64
	pendingVel physics.Vec2
}

// Match owns one game from pre-game to completion. The world is mutated
// only by the tick loop; inputs and cancellation arrive through the inputs
// channel and the status word.
type Match struct {
	id     string
	ranked bool
	p1     slot // bottom paddle, authoritative frame
	p2     slot // top paddle, sees mirrored coordinates
	world  world
	cfg    Config

	status     int32
	inputs     chan moveInput
	stop       chan struct{}
	stopOnce   sync.Once
	onFinished func(*Match)
	rng        *rand.Rand
}

func newMatch(ranked bool, p1, p2 slot, cfg Config, onFinished func(*Match)) *Match {
	m := &Match{
		id:         uuid.New().String(),
		ranked:     ranked,
		p1:         p1,
		p2:         p2,
		cfg:        cfg,
		inputs:     make(chan moveInput, 64),
		stop:       make(chan struct{}),
		onFinished: onFinished,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	w, h := cfg.CanvasWidth, cfg.CanvasHeight
	m.world = world{
		ball:         physics.NewCircle(w/2, h/2, cfg.BallRadius),
		topPaddle:    physics.NewBox(w/2, cfg.WallInset, cfg.PaddleWidth, cfg.PaddleHeight),
		bottomPaddle: physics.NewBox(w/2, h-cfg.WallInset, cfg.PaddleWidth, cfg.PaddleHeight),
		topWall:      physics.NewBox(w/2, -10, w, 20),
		bottomWall:   physics.NewBox(w/2, h+10, w, 20),
		leftWall:     physics.NewBox(-10, h/2, 20, h),
		rightWall:    physics.NewBox(w+10, h/2, 20, h),
		speed:        cfg.InitialBallSpeed,
		launchAt:     cfg.LaunchDelayTicks,
		pendingVel:   physics.Vec2{X: 0, Y: cfg.InitialBallSpeed},
	}
	return m
}

func (m *Match) ID() string { return m.id }

// opponentOf returns the other participant. Only the immutable slot
// fields are read, so this is safe to call while the tick loop is
// mutating scores.
func (m *Match) opponentOf(username string) (string, Conn) {
	if username == m.p1.username {
		return m.p2.username, m.p2.conn
	}
	return m.p1.username, m.p1.conn
}

func (m *Match) Status() Status {
	return Status(atomic.LoadInt32(&m.status))
}

func (m *Match) transition(from, to Status) bool {
	return atomic.CompareAndSwapInt32(&m.status, int32(from), int32(to))
}

// Cancel flips the match to Cancelled and stops the loop. Safe to call
// more than once and after the match has finished.
func (m *Match) Cancel() {
	if m.transition(StatusStarting, StatusCancelled) || m.transition(StatusPlaying, StatusCancelled) {
		m.stopOnce.Do(func() { close(m.stop) })
	}
}

// Move queues a paddle input. Inputs naming a user outside the session are
// dropped, as are inputs beyond the buffer.
func (m *Match) Move(username string, dir float64) {
	if username != m.p1.username && username != m.p2.username {
		return
	}
	select {
	case m.inputs <- moveInput{username: username, dir: dir}:
	default:
	}
}

// Run sends the canvas payload and drives the fixed-rate tick loop until
// the match finishes or is cancelled.
func (m *Match) Run() {
	if !m.transition(StatusStarting, StatusPlaying) {
		return
	}
	m.sendCanvas()

	ticker := time.NewTicker(m.cfg.TickPeriod())
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			if !m.step() {
				return
			}
		}
	}
}

// step advances the match by one tick. Returns false when the loop must
// stop.
func (m *Match) step() bool {
	m.drainInputs()

	w := &m.world
	w.tick++
	if w.launchAt > 0 && w.tick >= w.launchAt {
		w.launchAt = 0
		w.ball.Vel = w.pendingVel
	}
	w.ball.Step()

	// Rally escalation: every sixth paddle contact speeds the ball up,
	// capped at MaxBallSpeed.
	if w.hits >= m.cfg.HitsPerSpeedUp && w.speed < m.cfg.MaxBallSpeed {
		w.hits = 0
		w.speed++
	}

	if m.Status() == StatusCancelled {
		return false
	}

	if m.p1.score >= m.cfg.WinScore || m.p2.score >= m.cfg.WinScore {
		if m.transition(StatusPlaying, StatusFinished) && m.onFinished != nil {
			m.onFinished(m)
		}
		m.stopOnce.Do(func() { close(m.stop) })
		return false
	}

	m.collidePaddles()
	m.collideWalls()
	m.emitUpdate()
	return true
}

func (m *Match) drainInputs() {
	for {
		select {
		case in := <-m.inputs:
			m.applyMove(in)
		default:
			return
		}
	}
}

func (m *Match) applyMove(in moveInput) {
	w := &m.world
	var paddle *physics.Body
	var dx float64
	switch in.username {
	case m.p1.username:
		paddle = &w.bottomPaddle
		dx = in.dir * m.cfg.PaddleStep
	case m.p2.username:
		// Player 2 sees a mirrored table, so their "right" is -x here.
		paddle = &w.topPaddle
		dx = -in.dir * m.cfg.PaddleStep
	default:
		return
	}

	next := paddle.Pos.X + dx
	if next < m.cfg.WallInset || next > m.cfg.CanvasWidth-m.cfg.WallInset {
		return
	}
	paddle.Pos.X = next
}

func (m *Match) collidePaddles() {
	w := &m.world
	if w.ball.HitsRect(&w.topPaddle) {
		w.hits++
		w.ball.Vel = physics.Vec2{X: m.reboundX(&w.topPaddle), Y: w.speed + 1}
	}
	if w.ball.HitsRect(&w.bottomPaddle) {
		w.hits++
		w.ball.Vel = physics.Vec2{X: m.reboundX(&w.bottomPaddle), Y: -(w.speed + 1)}
	}
}

// reboundX maps the contact offset from the paddle center to a new
// horizontal velocity, combined with the ball's incoming horizontal
// velocity and capped at the current ball speed.
func (m *Match) reboundX(paddle *physics.Body) float64 {
	w := &m.world
	contact := physics.Clamp(w.ball.Pos.X, paddle.Pos.X-paddle.W/2, paddle.Pos.X+paddle.W/2)
	offset := contact - paddle.Pos.X
	xVel := offset / (paddle.W / 2) * w.speed
	ballX := w.ball.Vel.X

	if ballX*xVel >= 0 {
		tot := math.Abs(ballX) + math.Abs(xVel)
		if tot > w.speed {
			if xVel < 0 {
				return -w.speed
			}
			return w.speed
		}
		return xVel + ballX
	}
	if xVel-ballX < -w.speed {
		return xVel
	}
	return xVel - ballX
}

func (m *Match) collideWalls() {
	w := &m.world
	if w.ball.HitsRect(&w.leftWall) && w.ball.Vel.X < 0 {
		w.ball.Vel.X = -w.ball.Vel.X
	}
	if w.ball.HitsRect(&w.rightWall) && w.ball.Vel.X > 0 {
		w.ball.Vel.X = -w.ball.Vel.X
	}
	if w.ball.HitsRect(&w.topWall) {
		m.p1.score++
		m.resetBall()
	}
	if w.ball.HitsRect(&w.bottomWall) {
		m.p2.score++
		m.resetBall()
	}
}

// resetBall parks the ball at center and schedules a relaunch with a fresh
// random direction. The escalated speed resets with each point.
func (m *Match) resetBall() {
	w := &m.world
	w.speed = m.cfg.InitialBallSpeed
	w.ball.Vel = physics.Vec2{}
	w.ball.Pos = physics.Vec2{X: m.cfg.CanvasWidth / 2, Y: m.cfg.CanvasHeight / 2}
	w.pendingVel = m.randomVel()
	w.launchAt = w.tick + m.cfg.RelaunchDelayTicks
}

func (m *Match) randomVel() physics.Vec2 {
	w := &m.world
	x := (m.rng.Float64()*2 - 1) * w.speed
	y := w.speed
	if m.rng.Float64() < 0.5 {
		y = -y
	}
	return physics.Vec2{X: x, Y: y}
}

func (m *Match) mirror(p physics.Vec2) physics.Vec2 {
	return physics.Vec2{X: m.cfg.CanvasWidth - p.X, Y: m.cfg.CanvasHeight - p.Y}
}

func (m *Match) sendCanvas() {
	ev := CanvasEvent{
		Canvas:       CanvasSize{Width: m.cfg.CanvasWidth, Height: m.cfg.CanvasHeight},
		FrameRate:    1000 / m.cfg.FrameRate,
		TopPaddle:    PaddleSize{Width: m.cfg.PaddleWidth, Height: m.cfg.PaddleHeight},
		BottomPaddle: PaddleSize{Width: m.cfg.PaddleWidth, Height: m.cfg.PaddleHeight},
		Ball:         BallSize{Radius: m.cfg.BallRadius},
	}
	m.p1.conn.Send(EventCanvas, ev)
	m.p2.conn.Send(EventCanvas, ev)
}

func (m *Match) emitUpdate() {
	w := &m.world
	m.p1.conn.Send(EventUpdate, UpdateEvent{
		BallPos:         w.ball.Pos,
		TopPaddlePos:    w.topPaddle.Pos,
		BottomPaddlePos: w.bottomPaddle.Pos,
		Username:        m.p1.username,
		Score:           ScoreView{Top: m.p2.score, Bottom: m.p1.score},
	})
	m.p2.conn.Send(EventUpdate, UpdateEvent{
		BallPos:         m.mirror(w.ball.Pos),
		TopPaddlePos:    m.mirror(w.bottomPaddle.Pos),
		BottomPaddlePos: m.mirror(w.topPaddle.Pos),
		Username:        m.p2.username,
		Score:           ScoreView{Top: m.p1.score, Bottom: m.p2.score},
	})
}
