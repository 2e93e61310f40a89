package ecs_test

import (
	"runtime"
	"testing"

	"github.com/jjoderis/GraphicsEngine-sub000/ecs"
)

type position struct {
	X, Y, Z float32
}

func BenchmarkAddRemove(b *testing.B) {
	reg := ecs.NewRegistry()
	const n = 1000
	ents := make([]ecs.Entity, n)
	for i := range ents {
		ents[i] = reg.AddEntity()
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, e := range ents {
			ecs.CreateComponent(reg, e, position{X: 1})
		}
		for _, e := range ents {
			ecs.RemoveComponent[position](reg, e)
		}
	}
}

func BenchmarkSharedAdd(b *testing.B) {
	reg := ecs.NewRegistry()
	shared := &position{}
	const n = 1000
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for e := ecs.Entity(0); e < n; e++ {
			ecs.AddComponent(reg, e, shared)
		}
		for e := ecs.Entity(0); e < n; e++ {
			ecs.RemoveComponent[position](reg, e)
		}
	}
}

func BenchmarkNotifyUpdated(b *testing.B) {
	reg := ecs.NewRegistry()
	e := reg.AddEntity()
	ecs.CreateComponent(reg, e, position{})
	subs := make([]*ecs.Subscription, 8)
	for i := range subs {
		subs[i] = ecs.OnUpdated(reg, e, func(ecs.Entity, *position) {})
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.NotifyUpdated[position](reg, e)
	}
	runtime.KeepAlive(subs)
}
