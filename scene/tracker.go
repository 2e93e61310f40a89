package scene

import (
	"slices"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/jjoderis/GraphicsEngine-sub000/ecs"
)

// TrackState is the tracker's view of an entity.
type TrackState uint8

const (
	// Unassociated entities have no Hierarchy component.
	Unassociated TrackState = iota
	// AwaitingTransform entities have a Hierarchy but no Transform yet.
	AwaitingTransform
	// Active entities have both and keep their world matrix current.
	Active
)

func (s TrackState) String() string {
	switch s {
	case Unassociated:
		return "unassociated"
	case AwaitingTransform:
		return "awaiting-transform"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// WorldChangedHandler is called after the tracker recomputed an entity's
// world matrix.
type WorldChangedHandler func(e ecs.Entity, t *Transform)

type node struct {
	state TrackState
	// parent is the parent the entity is currently attached to. It only
	// changes once a reparent has been validated, so walking it never loops.
	parent ecs.Entity

	hierarchySub *ecs.Subscription
	transformSub *ecs.Subscription
}

// Tracker keeps Transform.WorldMatrix and Transform.InverseWorld consistent
// with the parent chain described by Hierarchy components. It is driven
// entirely by registry events. Entities with a Transform but no Hierarchy are
// kept as roots: their world matrix is their local matrix.
//
// Subscriptions are held by the Tracker itself, so it keeps working only as
// long as the caller holds a reference to it.
type Tracker struct {
	reg    *ecs.Registry
	cfg    Config
	logger zerolog.Logger

	nodes map[ecs.Entity]*node
	// loose holds the update subscription of every Transform owner without a
	// Hierarchy.
	loose map[ecs.Entity]*ecs.Subscription
	subs  []*ecs.Subscription

	worldChanged ecs.Event[WorldChangedHandler]
}

// NewTracker starts tracking reg. Entities that already own a Hierarchy are
// picked up immediately.
func NewTracker(reg *ecs.Registry, opts ...Option) *Tracker {
	t := &Tracker{
		reg:    reg,
		cfg:    DefaultConfig(),
		logger: zerolog.Nop(),
		nodes:  make(map[ecs.Entity]*node),
		loose:  make(map[ecs.Entity]*ecs.Subscription),
	}
	for _, opt := range opts {
		opt(t)
	}
	if lvl, err := t.cfg.level(); err == nil {
		t.logger = t.logger.Level(lvl)
	}

	t.subs = append(t.subs,
		ecs.OnAdded[Hierarchy](reg, t.onHierarchyAdded),
		ecs.OnRemoved[Hierarchy](reg, t.onHierarchyRemoved),
		ecs.OnAdded[Transform](reg, t.onTransformAdded),
		ecs.OnRemoved[Transform](reg, t.onTransformRemoved),
	)

	owners := ecs.Owners[Hierarchy](reg)
	for i, h := range ecs.Components[Hierarchy](reg) {
		for _, e := range owners[i] {
			t.onHierarchyAdded(e, h)
		}
	}
	owners = ecs.Owners[Transform](reg)
	for i, tr := range ecs.Components[Transform](reg) {
		for _, e := range owners[i] {
			t.onTransformAdded(e, tr)
		}
	}
	return t
}

// Config returns the active configuration.
func (t *Tracker) Config() Config {
	return t.cfg
}

// State returns where e is in the tracking state machine.
func (t *Tracker) State(e ecs.Entity) TrackState {
	n := t.nodes[e]
	if n == nil {
		return Unassociated
	}
	return n.state
}

// Len returns the number of entities tracked through a Hierarchy.
func (t *Tracker) Len() int {
	return len(t.nodes)
}

// OnWorldChanged subscribes to world matrix recomputations. It fires once per
// recomputed entity, parents before their children.
func (t *Tracker) OnWorldChanged(fn WorldChangedHandler) *ecs.Subscription {
	return t.worldChanged.Subscribe(fn)
}

// Close stops tracking. World matrices are left as they are.
func (t *Tracker) Close() {
	for _, s := range t.subs {
		s.Close()
	}
	t.subs = nil
	for _, n := range t.nodes {
		n.hierarchySub.Close()
		n.transformSub.Close()
	}
	clear(t.nodes)
	for _, s := range t.loose {
		s.Close()
	}
	clear(t.loose)
}

func (t *Tracker) onHierarchyAdded(e ecs.Entity, h *Hierarchy) {
	if t.nodes[e] != nil {
		return
	}
	// rejected before any state is recorded for e
	if target := h.Parent(); target != ecs.NoEntity && (target == e || t.isAncestor(e, target)) {
		h.Assign(ecs.NoEntity)
		panic(eris.Wrapf(ErrHierarchyCycle, "entity %d under %d", e, target))
	}
	t.warnShared(e, "hierarchy", len(ecs.OwnersOf(t.reg, h)))
	t.dropLoose(e)

	n := &node{state: AwaitingTransform, parent: ecs.NoEntity}
	t.nodes[e] = n
	n.hierarchySub = ecs.OnUpdated[Hierarchy](t.reg, e, t.onHierarchyUpdated)
	if h.HasParent() {
		t.attach(e, n, h.Parent())
	}

	t.logger.Debug().
		Uint32("entity", uint32(e)).
		Uint32("parent", uint32(n.parent)).
		Msg("hierarchy tracked")

	if ecs.HasComponent[Transform](t.reg, e) {
		t.activate(e, n)
	}
	t.debugChecks(e, n)
}

func (t *Tracker) onHierarchyUpdated(e ecs.Entity, h *Hierarchy) {
	n := t.nodes[e]
	if n == nil {
		return
	}
	target := h.Parent()
	if target == n.parent {
		return
	}
	if target != ecs.NoEntity && (target == e || t.isAncestor(e, target)) {
		// restore the last valid parent before reporting
		h.Assign(n.parent)
		panic(eris.Wrapf(ErrHierarchyCycle, "entity %d under %d", e, target))
	}

	old := n.parent
	t.detach(e, n)
	t.attach(e, n, target)

	t.logger.Debug().
		Uint32("entity", uint32(e)).
		Uint32("from", uint32(old)).
		Uint32("parent", uint32(target)).
		Msg("entity reparented")

	if n.state == Active {
		t.refresh(e)
	}
	t.debugChecks(e, n)
}

// onHierarchyRemoved runs while h is still attached to e.
func (t *Tracker) onHierarchyRemoved(e ecs.Entity, h *Hierarchy) {
	n := t.nodes[e]
	if n == nil {
		return
	}
	n.hierarchySub.Close()
	n.transformSub.Close()
	t.detach(e, n)
	delete(t.nodes, e)

	orphans := slices.Clone(h.children)
	h.children = nil
	for _, c := range orphans {
		if ch := ecs.GetComponent[Hierarchy](t.reg, c); ch != nil && ch.Parent() == e {
			ch.Assign(ecs.NoEntity)
		}
		cn := t.nodes[c]
		if cn == nil || cn.parent != e {
			continue
		}
		cn.parent = ecs.NoEntity
		if cn.state == Active {
			t.refresh(c)
		}
	}

	t.logger.Debug().
		Uint32("entity", uint32(e)).
		Int("orphans", len(orphans)).
		Msg("hierarchy released")

	if tr := ecs.GetComponent[Transform](t.reg, e); tr != nil {
		t.trackLoose(e, tr)
	}
}

func (t *Tracker) onTransformAdded(e ecs.Entity, tr *Transform) {
	n := t.nodes[e]
	if n == nil {
		t.trackLoose(e, tr)
		return
	}
	if n.state == Active {
		return
	}
	t.activate(e, n)
}

func (t *Tracker) onTransformUpdated(e ecs.Entity, _ *Transform) {
	n := t.nodes[e]
	if n == nil || n.state != Active {
		return
	}
	t.refresh(e)
}

// onTransformRemoved runs while the Transform is still attached, so the
// state flips first and children stop reading it as their parent's.
func (t *Tracker) onTransformRemoved(e ecs.Entity, _ *Transform) {
	t.dropLoose(e)
	n := t.nodes[e]
	if n == nil || n.state != Active {
		return
	}
	n.transformSub.Close()
	n.transformSub = nil
	n.state = AwaitingTransform
	t.cascade(e)
}

func (t *Tracker) activate(e ecs.Entity, n *node) {
	if tr := ecs.GetComponent[Transform](t.reg, e); tr != nil {
		t.warnShared(e, "transform", len(ecs.OwnersOf(t.reg, tr)))
	}
	n.state = Active
	n.transformSub.Close()
	n.transformSub = ecs.OnUpdated[Transform](t.reg, e, t.onTransformUpdated)
	t.refresh(e)
}

// trackLoose computes the world matrix of a Transform owner without a
// Hierarchy and keeps it in step with later updates.
func (t *Tracker) trackLoose(e ecs.Entity, tr *Transform) {
	t.warnShared(e, "transform", len(ecs.OwnersOf(t.reg, tr)))
	t.dropLoose(e)
	t.loose[e] = ecs.OnUpdated[Transform](t.reg, e, func(_ ecs.Entity, tr *Transform) {
		t.setRoot(e, tr)
	})
	t.setRoot(e, tr)
}

func (t *Tracker) dropLoose(e ecs.Entity) {
	if s, ok := t.loose[e]; ok {
		s.Close()
		delete(t.loose, e)
	}
}

func (t *Tracker) setRoot(e ecs.Entity, tr *Transform) {
	tr.setWorld(tr.Matrix)
	t.worldChanged.Emit(func(fn WorldChangedHandler) { fn(e, tr) })
}

// warnShared logs when a component instance the tracker derives per-entity
// state from has more than one owner.
func (t *Tracker) warnShared(e ecs.Entity, component string, owners int) {
	if owners <= 1 {
		return
	}
	t.logger.Warn().
		Uint32("entity", uint32(e)).
		Str("component", component).
		Int("owners", owners).
		Msg("shared instance is not supported")
}

// attach links e under parent, creating the parent's Hierarchy if needed.
func (t *Tracker) attach(e ecs.Entity, n *node, parent ecs.Entity) {
	if parent == ecs.NoEntity {
		return
	}
	ph := ecs.GetComponent[Hierarchy](t.reg, parent)
	if ph == nil {
		ph = ecs.CreateComponent(t.reg, parent, Hierarchy{})
	}
	ph.addChild(e)
	n.parent = parent
}

func (t *Tracker) detach(e ecs.Entity, n *node) {
	if n.parent == ecs.NoEntity {
		return
	}
	if ph := ecs.GetComponent[Hierarchy](t.reg, n.parent); ph != nil {
		ph.removeChild(e)
	}
	n.parent = ecs.NoEntity
}

// isAncestor reports whether candidate is e or one of e's ancestors.
func (t *Tracker) isAncestor(candidate, e ecs.Entity) bool {
	for p := e; p != ecs.NoEntity; {
		if p == candidate {
			return true
		}
		n := t.nodes[p]
		if n == nil {
			return false
		}
		p = n.parent
	}
	return false
}

// parentTransform returns the Transform of e's parent, or nil when e is a
// root or its parent is not Active.
func (t *Tracker) parentTransform(n *node) *Transform {
	if n.parent == ecs.NoEntity {
		return nil
	}
	pn := t.nodes[n.parent]
	if pn == nil || pn.state != Active {
		return nil
	}
	return ecs.GetComponent[Transform](t.reg, n.parent)
}

// refresh recomputes e and then its subtree.
func (t *Tracker) refresh(e ecs.Entity) {
	t.recompute(e)
	t.cascade(e)
}

func (t *Tracker) recompute(e ecs.Entity) {
	n := t.nodes[e]
	tr := ecs.GetComponent[Transform](t.reg, e)
	if n == nil || tr == nil {
		return
	}
	tr.setWorld(worldFrom(t.parentTransform(n), tr))
	t.worldChanged.Emit(func(fn WorldChangedHandler) { fn(e, tr) })
}

// cascade recomputes every Active descendant of e, depth first. Children
// still awaiting a Transform stop the walk: their own children compute from
// their local matrix alone.
func (t *Tracker) cascade(e ecs.Entity) {
	h := ecs.GetComponent[Hierarchy](t.reg, e)
	if h == nil {
		return
	}
	for _, c := range slices.Clone(h.children) {
		cn := t.nodes[c]
		if cn == nil || cn.state != Active || cn.parent != e {
			continue
		}
		t.refresh(c)
	}
}
