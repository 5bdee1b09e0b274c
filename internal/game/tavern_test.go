package game

import "testing"

func newTestTavern() (*TavernManager, *CardPool, *SpellPool) {
	pool := NewCardPool()
	spells := NewSpellPool()
	return NewTavernManager(pool, spells, newTestRNG(), nil), pool, spells
}

func TestBuyMovesStoreSlotToHand(t *testing.T) {
	testCard("t_buy", 1, 1, 1, nil)
	tm, _, _ := newTestTavern()
	players := newTestPlayers()
	p := players[0]
	p.Gold = 10
	p.Store = []*StoreItem{{Unit: NewUnit(LookupCard("t_buy"), 0)}}

	ok, _ := tm.Buy(players, 0, 0, 1)
	if !ok {
		t.Fatal("buy should succeed with enough gold and free hand space")
	}
	if len(p.Store) != 0 {
		t.Fatal("bought item should leave the store")
	}
	if len(p.Hand) != 1 || p.Hand[0].Unit.CardID != "t_buy" {
		t.Fatal("bought unit should land in hand")
	}
	if p.Gold != 10-CostBuy {
		t.Fatalf("gold = %d, want %d", p.Gold, 10-CostBuy)
	}
}

func TestBuyFailsWithoutEnoughGold(t *testing.T) {
	testCard("t_buy_poor", 1, 1, 1, nil)
	tm, _, _ := newTestTavern()
	players := newTestPlayers()
	p := players[0]
	p.Gold = 0
	p.Store = []*StoreItem{{Unit: NewUnit(LookupCard("t_buy_poor"), 0)}}

	ok, reason := tm.Buy(players, 0, 0, 1)
	if ok {
		t.Fatal("buy should fail without enough gold")
	}
	if reason == "" {
		t.Fatal("expected a failure reason")
	}
	if len(p.Store) != 1 {
		t.Fatal("failed buy must not mutate the store")
	}
}

func TestBuyFailsWhenHandFull(t *testing.T) {
	testCard("t_buy_full", 1, 1, 1, nil)
	tm, _, _ := newTestTavern()
	players := newTestPlayers()
	p := players[0]
	p.Gold = 99
	for i := 0; i < MaxHandSize; i++ {
		p.Hand = append(p.Hand, &HandCard{UID: newUID(), SpellID: "filler"})
	}
	p.Store = []*StoreItem{{Unit: NewUnit(LookupCard("t_buy_full"), 0)}}

	ok, _ := tm.Buy(players, 0, 0, 1)
	if ok {
		t.Fatal("buy should fail when hand is full")
	}
}

func TestSellReturnsGoldAndClearsBoardSlot(t *testing.T) {
	testCard("t_sell", 1, 1, 1, nil)
	tm, pool, _ := newTestTavern()
	players := newTestPlayers()
	p := players[0]
	p.Gold = 0
	p.Board = []*Unit{NewUnit(LookupCard("t_sell"), 0)}

	before := 0
	for _, ids := range pool.tiers {
		before += len(ids)
	}

	ok, _ := tm.Sell(players, 0, 0, 1)
	if !ok {
		t.Fatal("sell should succeed on a valid board index")
	}
	if len(p.Board) != 0 {
		t.Fatal("sold unit should leave the board")
	}
	if p.Gold != 1 {
		t.Fatalf("gold after sell = %d, want 1", p.Gold)
	}

	after := 0
	for _, ids := range pool.tiers {
		after += len(ids)
	}
	if after != before+1 {
		t.Fatalf("sold card should return to the pool: before=%d after=%d", before, after)
	}
}

func TestPlayMovesHandUnitToBoard(t *testing.T) {
	testCard("t_play", 1, 2, 2, nil)
	tm, _, _ := newTestTavern()
	players := newTestPlayers()
	p := players[0]
	u := NewUnit(LookupCard("t_play"), 0)
	p.Hand = []*HandCard{{UID: u.UID, Unit: u}}

	ok, _ := tm.Play(players, 0, 0, 0, -1, 1)
	if !ok {
		t.Fatal("play should succeed for a valid hand unit")
	}
	if len(p.Hand) != 0 {
		t.Fatal("played card should leave the hand")
	}
	if len(p.Board) != 1 || p.Board[0].CardID != "t_play" {
		t.Fatal("played unit should land on the board")
	}
}

func TestPlayFailsWhenBoardFull(t *testing.T) {
	testCard("t_play_full", 1, 1, 1, nil)
	tm, _, _ := newTestTavern()
	players := newTestPlayers()
	p := players[0]
	for i := 0; i < MaxBoardSize; i++ {
		p.Board = append(p.Board, NewUnit(LookupCard("t_play_full"), 0))
	}
	u := NewUnit(LookupCard("t_play_full"), 0)
	p.Hand = []*HandCard{{UID: u.UID, Unit: u}}

	ok, _ := tm.Play(players, 0, 0, 0, -1, 1)
	if ok {
		t.Fatal("play should fail when the board is full")
	}
}

func TestPlaySpellCastsAndConsumesHandSlot(t *testing.T) {
	RegisterSpell(&Spell{ID: "t_spell_gold", Name: "t_spell_gold", Tier: 1, Effect: "GAIN_GOLD", Params: map[string]int{"gold": 2}})
	tm, _, _ := newTestTavern()
	players := newTestPlayers()
	p := players[0]
	p.Gold = 0
	p.Hand = []*HandCard{{UID: newUID(), SpellID: "t_spell_gold"}}

	ok, _ := tm.Play(players, 0, 0, -1, -1, 1)
	if !ok {
		t.Fatal("casting a spell should succeed")
	}
	if len(p.Hand) != 0 {
		t.Fatal("cast spell should leave the hand")
	}
	if p.Gold != 2 {
		t.Fatalf("gold after GAIN_GOLD spell = %d, want 2", p.Gold)
	}
}

func TestSwapExchangesBoardSlots(t *testing.T) {
	testCard("t_swap_a", 1, 1, 1, nil)
	testCard("t_swap_b", 1, 2, 2, nil)
	tm, _, _ := newTestTavern()
	p := NewPlayer(0)
	p.Board = []*Unit{NewUnit(LookupCard("t_swap_a"), 0), NewUnit(LookupCard("t_swap_b"), 0)}

	ok, _ := tm.Swap(p, 0, 1)
	if !ok {
		t.Fatal("swap should succeed for valid indices")
	}
	if p.Board[0].CardID != "t_swap_b" || p.Board[1].CardID != "t_swap_a" {
		t.Fatal("swap should exchange the two slots")
	}
}

func TestFreezeTogglesAllStoreItems(t *testing.T) {
	tm, _, _ := newTestTavern()
	p := NewPlayer(0)
	p.Store = []*StoreItem{{SpellID: "x"}, {SpellID: "y"}}

	tm.Freeze(p)
	for _, item := range p.Store {
		if !item.Frozen {
			t.Fatal("all items should be frozen after first freeze")
		}
	}

	tm.Freeze(p)
	for _, item := range p.Store {
		if item.Frozen {
			t.Fatal("all items should be unfrozen after second freeze (toggle)")
		}
	}
}

func TestUpgradeAdvancesTierAndCost(t *testing.T) {
	tm, _, _ := newTestTavern()
	p := NewPlayer(0)
	p.Gold = 5
	p.UpCost = TierUpgradeCosts[2]

	ok, _ := tm.Upgrade(p)
	if !ok {
		t.Fatal("upgrade should succeed with enough gold")
	}
	if p.TavernTier != 2 {
		t.Fatalf("tavern tier = %d, want 2", p.TavernTier)
	}
	if p.Gold != 0 {
		t.Fatalf("gold = %d, want 0", p.Gold)
	}
	if p.UpCost != TierUpgradeCosts[3] {
		t.Fatalf("up cost = %d, want %d", p.UpCost, TierUpgradeCosts[3])
	}
}

func TestUpgradeFailsAtMaxTier(t *testing.T) {
	tm, _, _ := newTestTavern()
	p := NewPlayer(0)
	p.TavernTier = 6
	p.Gold = 99

	ok, _ := tm.Upgrade(p)
	if ok {
		t.Fatal("upgrade should fail at max tier")
	}
}

func TestCheckTripletMergesIntoGoldenAndGrantsReward(t *testing.T) {
	testCard("t_triple", 2, 2, 2, nil)
	tm, _, _ := newTestTavern()
	players := newTestPlayers()
	p := players[0]
	p.TavernTier = 2
	for i := 0; i < 3; i++ {
		p.Board = append(p.Board, NewUnit(LookupCard("t_triple"), 0))
	}

	tm.checkTriplet(players, 0, 1)

	if len(p.Board) != 1 {
		t.Fatalf("three copies should merge into one golden unit, board has %d", len(p.Board))
	}
	if !p.Board[0].IsGolden {
		t.Fatal("merged unit should be golden")
	}
	if p.Board[0].MaxAtk != 4 || p.Board[0].MaxHP != 4 {
		t.Fatalf("golden stats = %d/%d, want 4/4", p.Board[0].MaxAtk, p.Board[0].MaxHP)
	}
	found := false
	for _, h := range p.Hand {
		if h.SpellID == "S999" {
			found = true
			if h.RewardTier != 3 {
				t.Fatalf("reward tier = %d, want 3 (tavern tier + 1)", h.RewardTier)
			}
		}
	}
	if !found {
		t.Fatal("triplet merge should grant a triplet-reward spell")
	}
}

func TestEndTurnRemovesOnlyTemporaryCards(t *testing.T) {
	tm, _, _ := newTestTavern()
	p := NewPlayer(0)
	p.Hand = []*HandCard{
		{UID: newUID(), SpellID: "keep"},
		{UID: newUID(), SpellID: "drop", Temporary: true},
	}

	tm.EndTurn(p)

	if len(p.Hand) != 1 || p.Hand[0].SpellID != "keep" {
		t.Fatalf("expected only the non-temporary card to remain, got %+v", p.Hand)
	}
}
