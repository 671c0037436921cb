package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/cometlane/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Iter() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type FrameCounter struct {
	Frames ecs.Singleton[Frames]
}

func (s *FrameCounter) Execute(frame *ecs.UpdateFrame) {
	s.Frames.Get().Count++
}

type LaneSpawner struct {
	Lanes ecs.Query[struct{ *Lane }]
	Seen  []int
}

func (s *LaneSpawner) Execute(frame *ecs.UpdateFrame) {
	s.Seen = append(s.Seen, s.Lanes.Len())
	frame.Commands.Spawn(Lane{Index: s.Lanes.Len()})
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{}, Velocity{DX: 2, DY: -1})
	ecs.NewSingleton(storage, Frames{})

	scheduler := ecs.NewScheduler(storage)
	movement := &MovementSystem{}
	scheduler.Register(movement)
	scheduler.Register(&FrameCounter{})

	scheduler.Once(0.5)
	scheduler.Once(0.5)

	assert.Equal(t, 2, movement.ExecuteCount)

	var frames *Frames
	require.True(t, storage.ReadSingleton(&frames))
	assert.Equal(t, 2, frames.Count)

	view := ecs.NewView[struct{ *Position }](storage)
	for item := range view.Iter() {
		assert.InDelta(t, 2.0, item.Position.X, 1e-6)
		assert.InDelta(t, -1.0, item.Position.Y, 1e-6)
	}
}

func TestSchedulerCommandsApplyNextFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	spawner := &LaneSpawner{}
	scheduler.Register(spawner)

	scheduler.Once(0)
	scheduler.Once(0)
	scheduler.Once(0)

	assert.Equal(t, []int{0, 1, 2}, spawner.Seen)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, Frames{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&FrameCounter{})
	scheduler.Register(&MovementSystem{})

	for range 3 {
		scheduler.Once(1.0 / 60)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, "FrameCounter", stats.Systems[0].Name)
	assert.Equal(t, "MovementSystem", stats.Systems[1].Name)
	for _, st := range stats.Systems {
		assert.Equal(t, int64(3), st.ExecutionCount)
		assert.LessOrEqual(t, st.MinDuration, st.MaxDuration)
	}
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, Frames{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&FrameCounter{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}

	assert.Positive(t, scheduler.GetStats().TotalExecutions)
}

func TestQueryPanicsBeforeExecute(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	q := ecs.NewQuery[struct{ *Position }](storage)

	assert.Panics(t, func() { q.Iter() })
	assert.Panics(t, func() { q.First() })

	q.Execute()
	_, ok := q.First()
	assert.False(t, ok)

	storage.Spawn(Position{X: 9})
	q.Execute()
	item, ok := q.First()
	require.True(t, ok)
	assert.Equal(t, float32(9), item.Position.X)
}

type tickRecorder struct {
	ticks []uint64
}

func (s *tickRecorder) Execute(frame *ecs.UpdateFrame) {
	s.ticks = append(s.ticks, frame.Tick)
}

func TestSchedulerTickCountsFrames(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))
	first, second := &tickRecorder{}, &tickRecorder{}
	scheduler.Register(first)
	scheduler.Register(second)

	for range 3 {
		scheduler.Once(0.1)
	}

	assert.Equal(t, []uint64{1, 2, 3}, first.ticks)
	assert.Equal(t, first.ticks, second.ticks)
}
