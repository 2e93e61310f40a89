// Profiling:
// go build ./profile/registry
// go tool pprof -http=":8000" -nodefraction=0.001 ./registry mem.pprof

package main

import (
	"github.com/pkg/profile"

	"github.com/jjoderis/GraphicsEngine-sub000/ecs"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	rounds := 50
	iters := 100
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		reg := ecs.NewRegistry()
		shared := &comp2{V: 1, W: 1}
		updates := 0
		sub := ecs.OnAdded(reg, func(ecs.Entity, *comp1) { updates++ })

		for range iters {
			entities := make([]ecs.Entity, 0, numEntities)
			for range numEntities {
				e := reg.AddEntity()
				ecs.CreateComponent(reg, e, comp1{})
				ecs.AddComponent(reg, e, shared)
				entities = append(entities, e)
			}
			owners := ecs.Owners[comp1](reg)
			for i, c := range ecs.Components[comp1](reg) {
				for _, e := range owners[i] {
					other := ecs.GetComponent[comp2](reg, e)
					c.V += other.V
					c.W += other.W
				}
			}
			for _, e := range entities {
				reg.PurgeEntity(e)
			}
		}
		sub.Close()
	}
}
