package game

import "testing"

func TestRecomputePreservesMissingHP(t *testing.T) {
	card := testCard("u_recompute", 1, 2, 5, nil)
	u := NewUnit(card, 0)

	u.CurHP = 2 // took 3 damage
	u.PermHP += 4
	u.Recompute()

	if got, want := u.MaxHP, 9; got != want {
		t.Fatalf("MaxHP = %d, want %d", got, want)
	}
	if got, want := u.CurHP, 6; got != want {
		t.Fatalf("CurHP = %d, want %d (missing 3 preserved against new max)", got, want)
	}
}

func TestRecomputeClampsCurHPToMax(t *testing.T) {
	card := testCard("u_clamp", 1, 2, 5, nil)
	u := NewUnit(card, 0)
	u.CurHP = 5
	u.PermHP = -3 // a debuff shrinking max below current missing-delta math
	u.Recompute()

	if u.CurHP > u.MaxHP {
		t.Fatalf("CurHP %d exceeds MaxHP %d", u.CurHP, u.MaxHP)
	}
	if u.MaxHP < 1 {
		t.Fatalf("MaxHP must never drop below 1, got %d", u.MaxHP)
	}
}

func TestGoldenDoublesBaseStats(t *testing.T) {
	card := testCard("u_golden", 1, 3, 4, nil)
	u := NewUnit(card, 0)
	u.IsGolden = true
	u.Recompute()
	u.CurHP = u.MaxHP

	if u.MaxAtk != 6 || u.MaxHP != 8 {
		t.Fatalf("golden stats = %d/%d, want 6/8", u.MaxAtk, u.MaxHP)
	}
}

func TestIsAlive(t *testing.T) {
	card := testCard("u_alive", 1, 1, 1, nil)
	u := NewUnit(card, 0)
	if !u.IsAlive() {
		t.Fatal("freshly summoned unit should be alive")
	}
	u.CurHP = 0
	if u.IsAlive() {
		t.Fatal("unit at 0 hp should not be alive")
	}
}

func TestCombatCopyIsolatesFromSource(t *testing.T) {
	card := testCard("u_copy", 1, 2, 2, nil)
	u := NewUnit(card, 0)
	u.CombatAtk = 5
	clone := u.CombatCopy()

	if clone.CombatAtk != 0 {
		t.Fatalf("combat layer should reset on copy, got %d", clone.CombatAtk)
	}
	clone.PermAtk = 99
	if u.PermAtk == 99 {
		t.Fatal("mutating the clone must not affect the source")
	}
}
