package game

// queuedEvent pairs an event with the extra trigger instances supplied
// by its originator (e.g. a dying unit's own death-rattles), which only
// apply to collection for that specific event.
type queuedEvent struct {
	event Event
	extra []TriggerInstance
}

// ProcessEvent drains a FIFO queue seeded with one top-level event,
// collecting and firing triggers for each event popped, including any
// further events those triggers enqueue (§4.5).
func ProcessEvent(ctx *EffectContext, seed Event, extra []TriggerInstance) {
	queue := []queuedEvent{{event: seed, extra: extra}}
	for len(queue) > 0 {
		qe := queue[0]
		queue = queue[1:]

		triggers := collectTriggers(ctx, qe.event, qe.extra)
		ordered := orderTriggers(triggers)

		for _, ti := range ordered {
			if ti.Def.Condition != nil && !ti.Def.Condition(ctx, qe.event, ti.OwnerUID) {
				continue
			}
			for i := 0; i < ti.Stacks; i++ {
				ti.Def.Effect(ctx, qe.event, ti.OwnerUID, ti.Stacks)
			}
		}

		for _, e := range ctx.queue {
			queue = append(queue, queuedEvent{event: e})
		}
		ctx.queue = nil
		ctx.Reindex()
	}
}

// collectTriggers gathers every TriggerInstance that should be
// considered for ev, per §4.5's collection rule.
func collectTriggers(ctx *EffectContext, ev Event, extra []TriggerInstance) []TriggerInstance {
	var out []TriggerInstance

	for side := 0; side < 2; side++ {
		for slot, u := range ctx.players[side].Board {
			defs, stacks := selectDefsForUnit(u)
			for _, d := range defs {
				if d.EventType != ev.Type {
					continue
				}
				out = append(out, instanceFor(d, u.UID, stacks, ev, side, slot))
			}
			for _, effectID := range sortedStringKeys(u.AttachedPerm) {
				out = append(out, attachedInstances(u, effectID, u.AttachedPerm[effectID], ev, side, slot)...)
			}
			for _, effectID := range sortedStringKeys(u.AttachedTurn) {
				out = append(out, attachedInstances(u, effectID, u.AttachedTurn[effectID], ev, side, slot)...)
			}
			for _, effectID := range sortedStringKeys(u.AttachedCombat) {
				out = append(out, attachedInstances(u, effectID, u.AttachedCombat[effectID], ev, side, slot)...)
			}
		}
	}

	for _, d := range SystemTriggerRegistry[ev.Type] {
		out = append(out, instanceFor(d, "", 1, ev, -1, -1))
	}

	for _, ti := range extra {
		ti.group, ti.sidePriority, ti.slot = classify(ctx, ti.OwnerUID, ev)
		out = append(out, ti)
	}

	return out
}

func selectDefsForUnit(u *Unit) ([]TriggerDef, int) {
	if u.IsGolden {
		if defs, ok := GoldenTriggerRegistry[u.CardID]; ok {
			return defs, 1
		}
		return TriggerRegistry[u.CardID], 2
	}
	return TriggerRegistry[u.CardID], 1
}

func attachedInstances(u *Unit, effectID string, count int, ev Event, side, slot int) []TriggerInstance {
	if count <= 0 {
		return nil
	}
	var out []TriggerInstance
	for _, d := range TriggerRegistry[effectID] {
		if d.EventType != ev.Type {
			continue
		}
		out = append(out, instanceFor(d, u.UID, count, ev, side, slot))
	}
	return out
}

func instanceFor(d TriggerDef, owner EntityRef, stacks int, ev Event, side, slot int) TriggerInstance {
	ti := TriggerInstance{Def: d, OwnerUID: owner, Stacks: stacks}
	ti.group, ti.sidePriority, ti.slot = classifyKnown(owner, ev, side, slot)
	return ti
}

// classifyKnown computes ordering fields when the owner's side/slot at
// collection time are already known (avoids a redundant index lookup).
func classifyKnown(owner EntityRef, ev Event, side, slot int) (group, sidePriority, outSlot int) {
	group = 1
	if ev.Type == EvtMinionDied && owner != "" && owner == ev.Source {
		group = 0
	}
	if side < 0 {
		return group, 2, 1 << 30 // system trigger: no owning side, lowest-ranked bucket
	}
	sidePriority = 1
	if side == ev.Side {
		sidePriority = 0
	}
	return group, sidePriority, slot
}

// classify resolves ordering fields for an extra trigger instance whose
// owner may have already left the board (the dying unit itself).
func classify(ctx *EffectContext, owner EntityRef, ev Event) (group, sidePriority, slot int) {
	group = 1
	if ev.Type == EvtMinionDied && owner == ev.Source {
		group = 0
	}
	if u := ctx.ResolveUnit(owner); u != nil {
		pos, _ := ctx.ResolvePos(owner)
		sp := 1
		if pos.Side == ev.Side {
			sp = 0
		}
		return group, sp, pos.Slot
	}
	if ev.Snapshot != nil && ev.Snapshot.UID == owner {
		sp := 1
		if ev.Snapshot.Side == ev.Side {
			sp = 0
		}
		return group, sp, ev.Snapshot.Slot
	}
	return group, 2, 1 << 30
}

func sortedStringKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k, v := range m {
		if v > 0 {
			keys = append(keys, k)
		}
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// orderTriggers sorts by (group, -priority, side_priority, slot, uid).
func orderTriggers(triggers []TriggerInstance) []TriggerInstance {
	out := append([]TriggerInstance(nil), triggers...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && less(out[j], out[j-1]); j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func less(a, b TriggerInstance) bool {
	if a.group != b.group {
		return a.group < b.group
	}
	if a.Def.Priority != b.Def.Priority {
		return a.Def.Priority > b.Def.Priority // -priority ascending == priority descending
	}
	if a.sidePriority != b.sidePriority {
		return a.sidePriority < b.sidePriority
	}
	if a.slot != b.slot {
		return a.slot < b.slot
	}
	return a.OwnerUID < b.OwnerUID
}
