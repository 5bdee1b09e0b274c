package log

import (
	"fmt"
	"io"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

func sideName(side int) string {
	return fmt.Sprintf("P%d", side+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	for len(phase) < 8 {
		phase += " "
	}
	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// --- Helper constructors for common events ---

func NewStartOfTurnEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "recruit",
		Type:    EventStartOfTurn,
		Details: fmt.Sprintf("=== Turn %d: recruit phase begins ===", turn),
	}
}

func NewMinionBoughtEvent(turn, side int, cardID string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "recruit",
		Side:    side,
		Type:    EventMinionBought,
		CardID:  cardID,
		Details: fmt.Sprintf("%s buys %s", sideName(side), cardID),
	}
}

func NewMinionSoldEvent(turn, side int, cardID string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "recruit",
		Side:    side,
		Type:    EventMinionSold,
		CardID:  cardID,
		Details: fmt.Sprintf("%s sells %s", sideName(side), cardID),
	}
}

func NewMinionPlayedEvent(turn, side int, cardID string, slot int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "recruit",
		Side:    side,
		Type:    EventMinionPlayed,
		CardID:  cardID,
		Details: fmt.Sprintf("%s plays %s into slot %d", sideName(side), cardID, slot),
	}
}

func NewMinionDiedEvent(turn, side int, cardID string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "combat",
		Side:    side,
		Type:    EventMinionDied,
		CardID:  cardID,
		Details: fmt.Sprintf("%s's %s dies", sideName(side), cardID),
	}
}

func NewAttackDeclaredEvent(turn, side int, attackerCard, targetCard string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "combat",
		Side:    side,
		Type:    EventAttackDeclared,
		CardID:  attackerCard,
		Details: fmt.Sprintf("%s's %s attacks %s", sideName(side), attackerCard, targetCard),
	}
}

func NewStartOfCombatEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "combat",
		Type:    EventStartOfCombat,
		Details: fmt.Sprintf("=== Turn %d: combat begins ===", turn),
	}
}

func NewEndOfCombatEvent(turn int, outcome string, damage int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "combat",
		Type:    EventEndOfCombat,
		Details: fmt.Sprintf("combat ends: %s, damage=%d", outcome, damage),
	}
}

func NewGameOverEvent(turn, winner int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "combat",
		Type:    EventGameOver,
		Details: fmt.Sprintf("game over: player %d wins", winner),
	}
}
