package ecs_test

import "github.com/plus3/cometlane/ecs"

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Lane struct {
	Index int
}

type Label string

type Frames struct {
	Count int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Lane](registry)
	ecs.RegisterComponent[Label](registry)
	return registry
}
