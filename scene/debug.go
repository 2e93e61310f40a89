package scene

import (
	"github.com/jjoderis/GraphicsEngine-sub000/ecs"
)

// debugChecks warns when e sits deeper than MaxTreeDepth or its parent has
// more than MaxChildCount children. Only runs with Config.Debug.
func (t *Tracker) debugChecks(e ecs.Entity, n *node) {
	if !t.cfg.Debug {
		return
	}
	t.debugCheckTreeDepth(e)
	if n.parent != ecs.NoEntity {
		t.debugCheckChildCount(n.parent)
	}
}

// Depth returns the number of entities on the path from e up to its root,
// e included. Untracked entities have depth 0.
func (t *Tracker) Depth(e ecs.Entity) int {
	depth := 0
	for p := e; p != ecs.NoEntity; {
		n := t.nodes[p]
		if n == nil {
			break
		}
		depth++
		p = n.parent
	}
	return depth
}

func (t *Tracker) debugCheckTreeDepth(e ecs.Entity) {
	depth := t.Depth(e)
	if depth > t.cfg.MaxTreeDepth {
		t.logger.Warn().
			Uint32("entity", uint32(e)).
			Int("depth", depth).
			Int("threshold", t.cfg.MaxTreeDepth).
			Msg("tree depth exceeds threshold")
	}
}

func (t *Tracker) debugCheckChildCount(parent ecs.Entity) {
	h := ecs.GetComponent[Hierarchy](t.reg, parent)
	if h == nil {
		return
	}
	if len(h.children) > t.cfg.MaxChildCount {
		t.logger.Warn().
			Uint32("entity", uint32(parent)).
			Int("children", len(h.children)).
			Int("threshold", t.cfg.MaxChildCount).
			Msg("child count exceeds threshold")
	}
}
