package battle

import "monstercollector/internal/monster"

type EventKind int

const (
	EventWildAppeared EventKind = iota
	EventTrainerChallenge
	EventMoveUsed
	EventFainted
	EventExpGained
	EventLeveledUp
	EventEvolved
	EventCaptured
	EventBrokeFree
	EventPartyFull
	EventItemUsed
	EventSwitched
	EventSwitchRequired
	EventTrainerSendsOutNext
	EventTrainerDefeated
	EventFled
	EventFleeFailed
	EventBlackedOut
)

var eventNames = map[EventKind]string{
	EventWildAppeared:        "wild-appeared",
	EventTrainerChallenge:    "trainer-challenge",
	EventMoveUsed:            "move-used",
	EventFainted:             "fainted",
	EventExpGained:           "exp-gained",
	EventLeveledUp:           "leveled-up",
	EventEvolved:             "evolved",
	EventCaptured:            "captured",
	EventBrokeFree:           "broke-free",
	EventPartyFull:           "party-full",
	EventItemUsed:            "item-used",
	EventSwitched:            "switched",
	EventSwitchRequired:      "switch-required",
	EventTrainerSendsOutNext: "trainer-sends-out-next",
	EventTrainerDefeated:     "trainer-defeated",
	EventFled:                "fled",
	EventFleeFailed:          "flee-failed",
	EventBlackedOut:          "blacked-out",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Side tells which half of the field an event is about.
type Side int

const (
	SideNone Side = iota
	SidePlayer
	SideEnemy
)

// Event is one narrated step of a battle. Amount carries damage, exp,
// levels gained or money depending on Kind.
type Event struct {
	Kind    EventKind
	Side    Side
	Monster *monster.Monster
	Amount  int
	Text    string
}

// Texts flattens events into display lines.
func Texts(events []Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		if e.Text != "" {
			out = append(out, e.Text)
		}
	}
	return out
}

// Has reports whether any event has the given kind.
func Has(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
