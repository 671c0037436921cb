package ecs_test

import (
	"fmt"

	"github.com/plus3/cometlane/ecs"
)

type Falling struct {
	Y, Speed float64
}

type GravitySystem struct {
	Bodies ecs.Query[struct{ *Falling }]
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	for body := range s.Bodies.Iter() {
		body.Falling.Y -= body.Falling.Speed * frame.DeltaTime
	}
}

type Ticks struct {
	Count int
}

type TickSystem struct {
	Ticks ecs.Singleton[Ticks]
}

func (s *TickSystem) Execute(frame *ecs.UpdateFrame) {
	s.Ticks.Get().Count++
}

// ExampleScheduler shows a two-system loop: queries and singletons on the
// system structs are bound at registration and refreshed every frame.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Falling](registry)
	storage := ecs.NewStorage(registry)

	ecs.NewSingleton(storage, Ticks{})
	id := storage.Spawn(Falling{Y: 650, Speed: 300})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&GravitySystem{})
	scheduler.Register(&TickSystem{})

	scheduler.Once(0.5)
	scheduler.Once(0.5)

	var ticks *Ticks
	storage.ReadSingleton(&ticks)
	fmt.Printf("y=%.0f ticks=%d\n", ecs.ReadComponent[Falling](storage, id).Y, ticks.Count)

	// Output:
	// y=350 ticks=2
}
