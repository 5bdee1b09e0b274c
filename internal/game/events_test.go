package game

import "testing"

func newTestContext(players [2]*Player) *EffectContext {
	return newEffectContext(players, NewCardPool(), NewSpellPool(), newTestRNG(), nil, 1)
}

func TestOrderTriggersSortsByGroupThenPriority(t *testing.T) {
	low := TriggerInstance{Def: TriggerDef{Priority: 1}, group: 1, sidePriority: 0, slot: 0, OwnerUID: "a"}
	high := TriggerInstance{Def: TriggerDef{Priority: 5}, group: 1, sidePriority: 0, slot: 1, OwnerUID: "b"}
	deathGroup := TriggerInstance{Def: TriggerDef{Priority: 0}, group: 0, sidePriority: 0, slot: 2, OwnerUID: "c"}

	ordered := orderTriggers([]TriggerInstance{low, high, deathGroup})

	if ordered[0].OwnerUID != "c" {
		t.Fatalf("group 0 (the dying unit's own effects) must fire first, got %q", ordered[0].OwnerUID)
	}
	if ordered[1].OwnerUID != "b" {
		t.Fatalf("within group 1, higher priority must fire first, got %q", ordered[1].OwnerUID)
	}
	if ordered[2].OwnerUID != "a" {
		t.Fatalf("expected lowest priority last, got %q", ordered[2].OwnerUID)
	}
}

func TestOrderTriggersBreaksTiesBySideThenSlotThenUID(t *testing.T) {
	farSlot := TriggerInstance{Def: TriggerDef{Priority: 0}, group: 1, sidePriority: 0, slot: 3, OwnerUID: "z"}
	nearSlot := TriggerInstance{Def: TriggerDef{Priority: 0}, group: 1, sidePriority: 0, slot: 0, OwnerUID: "y"}
	otherSide := TriggerInstance{Def: TriggerDef{Priority: 0}, group: 1, sidePriority: 1, slot: 0, OwnerUID: "x"}

	ordered := orderTriggers([]TriggerInstance{otherSide, farSlot, nearSlot})

	if ordered[0].OwnerUID != "y" {
		t.Fatalf("own side before far slot, got order starting with %q", ordered[0].OwnerUID)
	}
	if ordered[1].OwnerUID != "z" {
		t.Fatalf("same side, later slot next, got %q", ordered[1].OwnerUID)
	}
	if ordered[2].OwnerUID != "x" {
		t.Fatalf("opposing side last, got %q", ordered[2].OwnerUID)
	}
}

func TestCollectTriggersFiltersByEventType(t *testing.T) {
	RegisterTriggers("e_fires_on_sold", TriggerDef{
		Name:      "fires on sold",
		EventType: EvtMinionSold,
		Effect:    func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {},
	})
	card := testCard("e_fires_on_sold", 1, 1, 1, nil)
	players := newTestPlayers()
	players[0].Board = append(players[0].Board, NewUnit(card, 0))
	ctx := newTestContext(players)

	onPlayed := collectTriggers(ctx, Event{Type: EvtMinionPlayed}, nil)
	if len(onPlayed) != 0 {
		t.Fatalf("trigger registered for minion_sold should not collect for minion_played, got %d", len(onPlayed))
	}

	onSold := collectTriggers(ctx, Event{Type: EvtMinionSold}, nil)
	if len(onSold) != 1 {
		t.Fatalf("expected exactly one collected trigger for minion_sold, got %d", len(onSold))
	}
}

func TestCollectTriggersGoldenOverrideReplacesDefault(t *testing.T) {
	RegisterTriggers("e_golden_base", TriggerDef{
		Name:      "base",
		EventType: EvtStartOfTurn,
		Effect:    func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {},
	})
	RegisterGoldenTriggers("e_golden_base", TriggerDef{
		Name:      "golden override",
		EventType: EvtStartOfTurn,
		Effect:    func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {},
	})
	card := testCard("e_golden_base", 1, 1, 1, nil)
	players := newTestPlayers()
	goldUnit := NewUnit(card, 0)
	goldUnit.IsGolden = true
	players[0].Board = append(players[0].Board, goldUnit)
	ctx := newTestContext(players)

	collected := collectTriggers(ctx, Event{Type: EvtStartOfTurn}, nil)
	if len(collected) != 1 {
		t.Fatalf("golden unit with an override should collect exactly 1 trigger, got %d", len(collected))
	}
	if collected[0].Def.Name != "golden override" {
		t.Fatalf("golden unit should use the override def, got %q", collected[0].Def.Name)
	}
	if collected[0].Stacks != 1 {
		t.Fatalf("golden override should fire once (not doubled), got %d stacks", collected[0].Stacks)
	}
}

func TestCollectTriggersGoldenDoublesDefaultWithoutOverride(t *testing.T) {
	RegisterTriggers("e_golden_nooverride", TriggerDef{
		Name:      "base only",
		EventType: EvtStartOfTurn,
		Effect:    func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {},
	})
	card := testCard("e_golden_nooverride", 1, 1, 1, nil)
	players := newTestPlayers()
	goldUnit := NewUnit(card, 0)
	goldUnit.IsGolden = true
	players[0].Board = append(players[0].Board, goldUnit)
	ctx := newTestContext(players)

	collected := collectTriggers(ctx, Event{Type: EvtStartOfTurn}, nil)
	if len(collected) != 1 {
		t.Fatalf("expected 1 collected trigger instance, got %d", len(collected))
	}
	if collected[0].Stacks != 2 {
		t.Fatalf("golden unit without an override should double-fire the default, got %d stacks", collected[0].Stacks)
	}
}

func TestProcessEventFiresMatchingTriggerOnce(t *testing.T) {
	fired := 0
	RegisterTriggers("e_process", TriggerDef{
		Name:      "counts fires",
		EventType: EvtStartOfTurn,
		Effect: func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			fired += stacks
		},
	})
	card := testCard("e_process", 1, 1, 1, nil)
	players := newTestPlayers()
	players[0].Board = append(players[0].Board, NewUnit(card, 0))
	ctx := newTestContext(players)

	ProcessEvent(ctx, Event{Type: EvtStartOfTurn, Side: 0}, nil)

	if fired != 1 {
		t.Fatalf("expected the trigger to fire once, fired %d times", fired)
	}
}

func TestProcessEventSkipsWhenConditionFalse(t *testing.T) {
	fired := false
	RegisterTriggers("e_condition", TriggerDef{
		Name:      "never",
		EventType: EvtStartOfTurn,
		Condition: func(ctx *EffectContext, ev Event, owner EntityRef) bool { return false },
		Effect:    func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) { fired = true },
	})
	card := testCard("e_condition", 1, 1, 1, nil)
	players := newTestPlayers()
	players[0].Board = append(players[0].Board, NewUnit(card, 0))
	ctx := newTestContext(players)

	ProcessEvent(ctx, Event{Type: EvtStartOfTurn, Side: 0}, nil)

	if fired {
		t.Fatal("trigger with a false condition must not fire")
	}
}
