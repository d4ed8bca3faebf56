package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/pongarena/pongarena-backend/physics"
)

func newTestMatch(t *testing.T) (*Match, *fakeConn, *fakeConn) {
	t.Helper()
	alice := newFakeConn("alice-conn")
	bob := newFakeConn("bob-conn")
	m := newMatch(true,
		slot{username: "alice", conn: alice},
		slot{username: "bob", conn: bob},
		DefaultConfig(), nil)
	require.True(t, m.transition(StatusStarting, StatusPlaying))
	return m, alice, bob
}

// park keeps the ball motionless so a test can drive a specific scenario.
func park(m *Match) {
	m.world.launchAt = 0
	m.world.ball.Vel = physics.Vec2{}
}

func TestCanvasPayloadIdenticalForBothPlayers(t *testing.T) {
	m, alice, bob := newTestMatch(t)
	m.sendCanvas()

	evA, ok := alice.last(EventCanvas)
	require.True(t, ok)
	evB, ok := bob.last(EventCanvas)
	require.True(t, ok)
	assert.Equal(t, evA.data, evB.data)

	canvas := evA.data.(CanvasEvent)
	assert.Equal(t, CanvasSize{Width: 500, Height: 800}, canvas.Canvas)
	assert.InDelta(t, 1000.0/60.0, canvas.FrameRate, 1e-9)
	assert.Equal(t, 10.0, canvas.Ball.Radius)
}

func TestMoveAppliesStepAndClamps(t *testing.T) {
	m, _, _ := newTestMatch(t)

	m.world.bottomPaddle.Pos.X = 240
	m.applyMove(moveInput{username: "alice", dir: +1})
	assert.Equal(t, 250.0, m.world.bottomPaddle.Pos.X)

	m.world.bottomPaddle.Pos.X = 450
	m.applyMove(moveInput{username: "alice", dir: +1})
	assert.Equal(t, 450.0, m.world.bottomPaddle.Pos.X, "out-of-range move is rejected")

	m.world.bottomPaddle.Pos.X = 50
	m.applyMove(moveInput{username: "alice", dir: -1})
	assert.Equal(t, 50.0, m.world.bottomPaddle.Pos.X)
}

func TestMoveIsMirroredForTopPlayer(t *testing.T) {
	m, _, _ := newTestMatch(t)

	// bob's "right" moves the top paddle toward -x in the authoritative frame
	m.world.topPaddle.Pos.X = 250
	m.applyMove(moveInput{username: "bob", dir: +1})
	assert.Equal(t, 240.0, m.world.topPaddle.Pos.X)
}

func TestOpponentOf(t *testing.T) {
	m, _, _ := newTestMatch(t)

	name, conn := m.opponentOf("alice")
	assert.Equal(t, "bob", name)
	assert.Equal(t, "bob-conn", conn.ID())

	name, conn = m.opponentOf("bob")
	assert.Equal(t, "alice", name)
	assert.Equal(t, "alice-conn", conn.ID())
}

func TestMoveFromStrangerIgnored(t *testing.T) {
	m, _, _ := newTestMatch(t)
	before := m.world.bottomPaddle.Pos.X
	m.Move("mallory", +1)
	m.drainInputs()
	assert.Equal(t, before, m.world.bottomPaddle.Pos.X)
}

func TestMirrorSymmetry(t *testing.T) {
	m, alice, bob := newTestMatch(t)
	park(m)
	m.world.ball.Pos = physics.Vec2{X: 123, Y: 456}
	m.world.topPaddle.Pos.X = 180
	m.world.bottomPaddle.Pos.X = 320

	require.True(t, m.step())

	evA, ok := alice.last(EventUpdate)
	require.True(t, ok)
	evB, ok := bob.last(EventUpdate)
	require.True(t, ok)

	a := evA.data.(UpdateEvent)
	b := evB.data.(UpdateEvent)

	assert.Equal(t, physics.Vec2{X: 123, Y: 456}, a.BallPos)
	assert.Equal(t, physics.Vec2{X: 500 - 123, Y: 800 - 456}, b.BallPos)

	// each player sees itself at the bottom
	assert.Equal(t, a.BottomPaddlePos, m.mirror(b.TopPaddlePos))
	assert.Equal(t, a.TopPaddlePos, m.mirror(b.BottomPaddlePos))
	assert.Equal(t, "alice", a.Username)
	assert.Equal(t, "bob", b.Username)
}

func TestScoreViewsAreSwapped(t *testing.T) {
	m, alice, bob := newTestMatch(t)
	park(m)
	m.p1.score = 2
	m.p2.score = 5

	require.True(t, m.step())

	evA, _ := alice.last(EventUpdate)
	evB, _ := bob.last(EventUpdate)
	assert.Equal(t, ScoreView{Top: 5, Bottom: 2}, evA.data.(UpdateEvent).Score)
	assert.Equal(t, ScoreView{Top: 2, Bottom: 5}, evB.data.(UpdateEvent).Score)
}

func TestBallLaunchesAfterDelay(t *testing.T) {
	m, _, _ := newTestMatch(t)

	for i := int64(0); i < m.cfg.LaunchDelayTicks-1; i++ {
		require.True(t, m.step())
	}
	assert.Equal(t, physics.Vec2{}, m.world.ball.Vel)

	require.True(t, m.step())
	assert.Equal(t, physics.Vec2{X: 0, Y: 5}, m.world.ball.Vel, "initial launch is straight down")
}

func TestPaddleReboundSetsAngledVelocity(t *testing.T) {
	m, _, _ := newTestMatch(t)
	park(m)

	// ball drifting into the bottom paddle, right of its center
	m.world.ball.Pos = physics.Vec2{X: 290, Y: 735}
	m.world.ball.Vel = physics.Vec2{X: 3, Y: 5}

	require.True(t, m.step())

	// combined x velocity is capped at the ball speed
	assert.Equal(t, m.world.speed, m.world.ball.Vel.X)
	assert.Equal(t, -(m.world.speed + 1), m.world.ball.Vel.Y, "bounces away from the bottom paddle")
	assert.Equal(t, 1, m.world.hits)
}

func TestSpeedEscalationIsCapped(t *testing.T) {
	m, _, _ := newTestMatch(t)
	park(m)

	for i := 0; i < 50; i++ {
		m.world.hits = m.cfg.HitsPerSpeedUp
		require.True(t, m.step())
	}
	assert.Equal(t, m.cfg.MaxBallSpeed, m.world.speed)
}

func TestTopWallScoresForBottomPlayer(t *testing.T) {
	m, _, _ := newTestMatch(t)
	park(m)
	m.world.speed = 9
	m.world.ball.Pos = physics.Vec2{X: 250, Y: 5}

	require.True(t, m.step())

	assert.Equal(t, 1, m.p1.score)
	assert.Equal(t, 0, m.p2.score)
	assert.Equal(t, physics.Vec2{X: 250, Y: 400}, m.world.ball.Pos, "ball resets to center")
	assert.Equal(t, physics.Vec2{}, m.world.ball.Vel)
	assert.Equal(t, m.cfg.InitialBallSpeed, m.world.speed, "escalation resets each point")
	assert.Equal(t, m.world.tick+m.cfg.RelaunchDelayTicks, m.world.launchAt)
}

func TestBottomWallScoresForTopPlayer(t *testing.T) {
	m, _, _ := newTestMatch(t)
	park(m)
	m.world.ball.Pos = physics.Vec2{X: 250, Y: 795}

	require.True(t, m.step())
	assert.Equal(t, 1, m.p2.score)
}

func TestRelaunchDirectionIsRandomizedAndBounded(t *testing.T) {
	m, _, _ := newTestMatch(t)
	park(m)
	m.world.ball.Pos = physics.Vec2{X: 250, Y: 5}
	require.True(t, m.step())

	launch := m.world.pendingVel
	speed := m.cfg.InitialBallSpeed
	assert.LessOrEqual(t, launch.X, speed)
	assert.GreaterOrEqual(t, launch.X, -speed)
	assert.Equal(t, speed, absFloat(launch.Y))
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestSideWallsReflectBall(t *testing.T) {
	m, _, _ := newTestMatch(t)
	park(m)
	m.world.ball.Pos = physics.Vec2{X: 5, Y: 400}
	m.world.ball.Vel = physics.Vec2{X: -6, Y: 4}

	require.True(t, m.step())
	assert.Equal(t, 6.0, m.world.ball.Vel.X)
	assert.Equal(t, 4.0, m.world.ball.Vel.Y)
}

func TestWinAtThresholdFinishesOnce(t *testing.T) {
	finishes := 0
	alice := newFakeConn("alice-conn")
	bob := newFakeConn("bob-conn")
	m := newMatch(true,
		slot{username: "alice", conn: alice},
		slot{username: "bob", conn: bob},
		DefaultConfig(),
		func(*Match) { finishes++ })
	require.True(t, m.transition(StatusStarting, StatusPlaying))
	park(m)

	m.p2.score = 7
	assert.False(t, m.step())
	assert.Equal(t, StatusFinished, m.Status())
	assert.Equal(t, 1, finishes)

	assert.False(t, m.step())
	assert.Equal(t, 1, finishes, "finish callback fires exactly once")
}

func TestScoresNeverExceedThreshold(t *testing.T) {
	m, _, _ := newTestMatch(t)
	park(m)
	m.p1.score = 6
	m.world.ball.Pos = physics.Vec2{X: 250, Y: 5}

	require.True(t, m.step(), "the scoring tick still emits")
	assert.Equal(t, 7, m.p1.score)

	// the next tick terminates before any further scoring
	assert.False(t, m.step())
	assert.Equal(t, 7, m.p1.score)
	assert.Equal(t, StatusFinished, m.Status())
}

func TestCancelStopsLoopAndEmission(t *testing.T) {
	m, alice, _ := newTestMatch(t)
	park(m)

	require.True(t, m.step())
	sent := alice.count(EventUpdate)

	m.Cancel()
	m.Cancel() // idempotent

	assert.Equal(t, StatusCancelled, m.Status())
	assert.False(t, m.step())
	assert.Equal(t, sent, alice.count(EventUpdate), "no emission after cancellation")
}

func TestCancelAfterFinishKeepsFinished(t *testing.T) {
	m, _, _ := newTestMatch(t)
	park(m)
	m.p1.score = 7
	assert.False(t, m.step())

	m.Cancel()
	assert.Equal(t, StatusFinished, m.Status())
}
