// Profiling:
// go build ./profile/scene
// go tool pprof -http=":8000" -nodefraction=0.001 ./scene cpu.pprof

package main

import (
	"github.com/pkg/profile"

	"github.com/jjoderis/GraphicsEngine-sub000/ecs"
	"github.com/jjoderis/GraphicsEngine-sub000/scene"
)

func main() {
	rounds := 20
	depth := 6
	fanout := 4
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, depth, fanout)
	p.Stop()
}

// run builds a tree of fanout^depth leaves and moves the root repeatedly, so
// every frame cascades through the whole tree.
func run(rounds, depth, fanout int) {
	for range rounds {
		reg := ecs.NewRegistry()
		tracker := scene.NewTracker(reg)
		root := scene.NewObject(reg, ecs.NoEntity)
		grow(reg, root, depth, fanout)

		for i := range 100 {
			scene.SetLocal(reg, root, func(tr *scene.Transform) { tr.Pos.X = float32(i) })
		}
		tracker.Close()
	}
}

func grow(reg *ecs.Registry, parent ecs.Entity, depth, fanout int) {
	if depth == 0 {
		return
	}
	for i := range fanout {
		child := scene.NewObject(reg, parent)
		scene.SetLocal(reg, child, func(tr *scene.Transform) { tr.Pos.Y = float32(i) })
		grow(reg, child, depth-1, fanout)
	}
}
