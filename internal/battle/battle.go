// Package battle resolves encounters between the player's party and a wild
// monster or a trainer's roster.
package battle

import (
	"errors"
	"fmt"
	"log"

	"monstercollector/internal/character"
	"monstercollector/internal/config"
	"monstercollector/internal/dice"
	"monstercollector/internal/monster"
)

var (
	ErrNotStarted     = errors.New("battle has not started")
	ErrBattleOver     = errors.New("battle is over")
	ErrOutcomePending = errors.New("previous action has not been resolved")
	ErrSwitchRequired = errors.New("choose a monster to send out")
	ErrInvalidSwitch  = errors.New("that monster cannot be sent out")
	ErrInvalidMove    = errors.New("no move in that slot")
	ErrUnknownItem    = errors.New("unknown item")
	ErrTrainerCapture = errors.New("you can't capture a trainer's monster")
	ErrItemNoEffect   = errors.New("it won't have any effect")
	ErrNoItem         = character.ErrNoItem
)

type State int

const (
	NotStarted State = iota
	InProgress
	Won
	Lost
	Fled
	Captured
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Fled:
		return "fled"
	case Captured:
		return "captured"
	}
	return "unknown"
}

// Over reports whether the state closes the encounter.
func (s State) Over() bool {
	return s >= Won
}

type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionSwitch
	ActionItem
	ActionRun
)

// Action is one player command. Slot is a move slot for ActionMove and a
// party slot for ActionSwitch; Item names a bag item for ActionItem.
type Action struct {
	Kind ActionKind
	Slot int
	Item string
}

func UseMove(slot int) Action    { return Action{Kind: ActionMove, Slot: slot} }
func SwitchTo(slot int) Action   { return Action{Kind: ActionSwitch, Slot: slot} }
func UseItem(name string) Action { return Action{Kind: ActionItem, Item: name} }
func Run() Action                { return Action{Kind: ActionRun} }

// Setup is everything New needs. Exactly one of Wild and Trainer is set.
type Setup struct {
	Config  *config.Config
	Catalog *monster.Catalog
	Rand    dice.Source
	Player  *character.Player
	Wild    *monster.Monster
	Trainer *character.Trainer

	// OnTrainerDefeated runs after the trainer is marked defeated and the
	// reward is paid.
	OnTrainerDefeated func(*character.Trainer)
	// OnBlackout runs after the player was sent to the recovery point.
	OnBlackout func()
}

type outcome int

const (
	outcomeEvaluate outcome = iota
	outcomeNone
	outcomeFled
	outcomeCaptured
)

// Pending is an applied action whose outcome has not been evaluated yet.
// Events holds what the action itself did.
type Pending struct {
	Events  []Event
	outcome outcome
}

type Battle struct {
	cfg     *config.Config
	catalog *monster.Catalog
	rnd     dice.Source
	player  *character.Player
	trainer *character.Trainer

	party       []*Combatant
	enemies     []*Combatant
	active      int
	enemyActive int

	state          State
	awaitingSwitch bool
	pending        *Pending

	onTrainerDefeated func(*character.Trainer)
	onBlackout        func()
}

func New(s Setup) (*Battle, error) {
	if s.Config == nil || s.Catalog == nil || s.Player == nil {
		return nil, errors.New("battle setup needs config, catalog and player")
	}
	if (s.Wild == nil) == (s.Trainer == nil) {
		return nil, errors.New("battle needs exactly one of a wild monster or a trainer")
	}
	if len(s.Player.Party) == 0 {
		return nil, errors.New("player has no monsters")
	}

	b := &Battle{
		cfg:               s.Config,
		catalog:           s.Catalog,
		rnd:               s.Rand,
		player:            s.Player,
		trainer:           s.Trainer,
		onTrainerDefeated: s.OnTrainerDefeated,
		onBlackout:        s.OnBlackout,
	}
	if b.rnd == nil {
		b.rnd = dice.Global
	}
	for _, m := range s.Player.Party {
		b.party = append(b.party, NewCombatant(m))
	}
	if s.Wild != nil {
		b.enemies = []*Combatant{NewCombatant(s.Wild)}
	} else {
		if len(s.Trainer.Roster) == 0 {
			return nil, fmt.Errorf("%s has no monsters", s.Trainer.Name())
		}
		for _, m := range s.Trainer.Roster {
			b.enemies = append(b.enemies, NewCombatant(m))
		}
	}
	return b, nil
}

// Start opens the battle and announces the opponent.
func (b *Battle) Start() []Event {
	if b.state != NotStarted {
		return nil
	}
	b.state = InProgress
	enemy := b.Enemy()
	if b.trainer == nil {
		return []Event{{
			Kind: EventWildAppeared, Side: SideEnemy, Monster: enemy.Monster,
			Text: fmt.Sprintf("A wild %s (Lv %d) appeared!", enemy.Name(), enemy.Monster.Level),
		}}
	}
	return []Event{{
		Kind: EventTrainerChallenge, Side: SideEnemy, Monster: enemy.Monster, Amount: len(b.enemies),
		Text: fmt.Sprintf("%s challenges you! They send out %s (Lv %d).", b.trainer.Name(), enemy.Name(), enemy.Monster.Level),
	}}
}

func (b *Battle) State() State {
	return b.state
}

func (b *Battle) AwaitingSwitch() bool {
	return b.awaitingSwitch
}

func (b *Battle) IsTrainerBattle() bool {
	return b.trainer != nil
}

func (b *Battle) Trainer() *character.Trainer {
	return b.trainer
}

// Active is the player's combatant on the field.
func (b *Battle) Active() *Combatant {
	return b.party[b.active]
}

func (b *Battle) ActiveSlot() int {
	return b.active
}

// Enemy is the opposing combatant on the field.
func (b *Battle) Enemy() *Combatant {
	return b.enemies[b.enemyActive]
}

// Party returns the player's combatants in party order.
func (b *Battle) Party() []*Combatant {
	return b.party
}

// EnemiesLeft counts the opposing monsters not yet fainted.
func (b *Battle) EnemiesLeft() int {
	n := 0
	for _, c := range b.enemies {
		if !c.Fainted() {
			n++
		}
	}
	return n
}

// Moves returns the moves the active monster can pick from.
func (b *Battle) Moves() []monster.Move {
	moves := b.Active().Monster.Moves
	if n := b.cfg.Battle.MoveSlots; n > 0 && len(moves) > n {
		return moves[:n]
	}
	return moves
}

// CanSwitchTo reports whether slot holds a conscious monster that is not
// already on the field.
func (b *Battle) CanSwitchTo(slot int) bool {
	return slot >= 0 && slot < len(b.party) && slot != b.active && !b.party[slot].Fainted()
}

func (b *Battle) hasReserve() bool {
	for i := range b.party {
		if b.CanSwitchTo(i) {
			return true
		}
	}
	return false
}

// Act applies an action and immediately evaluates its outcome.
func (b *Battle) Act(a Action) ([]Event, error) {
	p, err := b.Apply(a)
	if err != nil {
		return nil, err
	}
	return append(p.Events, b.Resolve(p)...), nil
}

// Apply carries out the player's action and any enemy reply. Rejected
// actions return an error and leave the battle untouched.
func (b *Battle) Apply(a Action) (*Pending, error) {
	switch {
	case b.state == NotStarted:
		return nil, ErrNotStarted
	case b.state.Over():
		return nil, ErrBattleOver
	case b.pending != nil:
		return nil, ErrOutcomePending
	case b.awaitingSwitch && a.Kind != ActionSwitch:
		return nil, ErrSwitchRequired
	}

	var (
		p   *Pending
		err error
	)
	switch a.Kind {
	case ActionMove:
		p, err = b.applyMove(a.Slot)
	case ActionSwitch:
		p, err = b.applySwitch(a.Slot)
	case ActionItem:
		p, err = b.applyItem(a.Item)
	case ActionRun:
		p = b.applyRun()
	default:
		err = fmt.Errorf("unknown action kind %d", a.Kind)
	}
	if err != nil {
		return nil, err
	}
	b.pending = p
	return p, nil
}

func (b *Battle) applyMove(slot int) (*Pending, error) {
	moves := b.Moves()
	if slot < 0 || slot >= len(moves) {
		return nil, ErrInvalidMove
	}
	playerMove := moves[slot]
	enemyMove := b.enemyMove()

	p := &Pending{}
	if b.Active().Monster.Speed() >= b.Enemy().Monster.Speed() {
		p.Events = append(p.Events, b.strike(SidePlayer, b.Active(), b.Enemy(), playerMove))
		if !b.Enemy().Fainted() {
			p.Events = append(p.Events, b.strike(SideEnemy, b.Enemy(), b.Active(), enemyMove))
		}
	} else {
		p.Events = append(p.Events, b.strike(SideEnemy, b.Enemy(), b.Active(), enemyMove))
		if !b.Active().Fainted() {
			p.Events = append(p.Events, b.strike(SidePlayer, b.Active(), b.Enemy(), playerMove))
		}
	}
	return p, nil
}

func (b *Battle) applySwitch(slot int) (*Pending, error) {
	if !b.CanSwitchTo(slot) {
		return nil, ErrInvalidSwitch
	}
	forced := b.awaitingSwitch
	b.active = slot
	b.awaitingSwitch = false

	p := &Pending{Events: []Event{{
		Kind: EventSwitched, Side: SidePlayer, Monster: b.Active().Monster, Amount: slot,
		Text: fmt.Sprintf("Go, %s!", b.Active().Name()),
	}}}
	if forced {
		p.outcome = outcomeNone
		return p, nil
	}
	p.Events = append(p.Events, b.enemyFreeAttack())
	return p, nil
}

func (b *Battle) applyItem(name string) (*Pending, error) {
	item, ok := b.cfg.GetItem(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, name)
	}
	if b.player.ItemCount(name) <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoItem, name)
	}

	switch item.Kind {
	case config.ItemKindCapture:
		return b.throwCaptureItem(name, item)
	case config.ItemKindHeal:
		active := b.Active()
		if active.HP >= active.MaxHP() {
			return nil, ErrItemNoEffect
		}
		if err := b.player.TakeItem(name); err != nil {
			return nil, err
		}
		healed := active.Heal(item.HealAmount)
		p := &Pending{Events: []Event{{
			Kind: EventItemUsed, Side: SidePlayer, Monster: active.Monster, Amount: healed,
			Text: fmt.Sprintf("You used a %s. %s recovered %d HP.", name, active.Name(), healed),
		}}}
		p.Events = append(p.Events, b.enemyFreeAttack())
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s has kind %q", ErrUnknownItem, name, item.Kind)
}

func (b *Battle) throwCaptureItem(name string, item config.ItemDefinition) (*Pending, error) {
	if err := b.player.TakeItem(name); err != nil {
		return nil, err
	}
	if b.trainer != nil {
		b.player.AddItem(name, 1)
		return nil, ErrTrainerCapture
	}

	target := b.Enemy()
	p := &Pending{Events: []Event{{
		Kind: EventItemUsed, Side: SidePlayer, Monster: target.Monster,
		Text: fmt.Sprintf("You threw a %s!", name),
	}}}
	if AttemptCapture(b.rnd, target.Monster, item.CaptureBonus) {
		p.outcome = outcomeCaptured
		return p, nil
	}
	p.Events = append(p.Events, Event{
		Kind: EventBrokeFree, Side: SideEnemy, Monster: target.Monster,
		Text: fmt.Sprintf("%s broke free!", target.Name()),
	})
	p.Events = append(p.Events, b.enemyFreeAttack())
	return p, nil
}

func (b *Battle) applyRun() *Pending {
	roll := b.rnd.Float64()
	if roll < b.cfg.Battle.EscapeChance || b.Active().Monster.Speed() >= b.Enemy().Monster.Speed() {
		return &Pending{outcome: outcomeFled}
	}
	p := &Pending{Events: []Event{{Kind: EventFleeFailed, Side: SidePlayer, Text: "Couldn't get away!"}}}
	p.Events = append(p.Events, b.enemyFreeAttack())
	return p
}

func (b *Battle) enemyMove() monster.Move {
	moves := b.Enemy().Monster.Moves
	if len(moves) == 0 {
		return monster.DefaultMove
	}
	return moves[b.rnd.Intn(len(moves))]
}

func (b *Battle) enemyFreeAttack() Event {
	return b.strike(SideEnemy, b.Enemy(), b.Active(), b.enemyMove())
}

func (b *Battle) strike(side Side, attacker, defender *Combatant, mv monster.Move) Event {
	hit := ResolveDamage(b.rnd, attacker.Monster, defender.Monster, mv)
	defender.TakeDamage(hit.Damage)
	return Event{Kind: EventMoveUsed, Side: side, Monster: attacker.Monster, Amount: hit.Damage, Text: hit.Message}
}

// Resolve evaluates the outcome of an applied action. In an interactive
// build the caller may pause between Apply and Resolve.
func (b *Battle) Resolve(p *Pending) []Event {
	if p == nil || p != b.pending {
		return nil
	}
	b.pending = nil

	switch p.outcome {
	case outcomeNone:
		return nil
	case outcomeFled:
		b.state = Fled
		return []Event{{Kind: EventFled, Side: SidePlayer, Text: "Got away safely!"}}
	case outcomeCaptured:
		return b.finishCapture()
	}

	if b.Enemy().Fainted() {
		return b.enemyFainted()
	}
	if b.Active().Fainted() {
		return b.playerFainted()
	}
	return nil
}

func (b *Battle) finishCapture() []Event {
	b.state = Captured
	caught := b.Enemy().Monster
	events := []Event{{
		Kind: EventCaptured, Side: SideEnemy, Monster: caught,
		Text: fmt.Sprintf("Gotcha! %s was caught!", caught.Name()),
	}}
	if err := b.player.AddToParty(caught); err != nil {
		events = append(events, Event{
			Kind: EventPartyFull, Side: SidePlayer, Monster: caught,
			Text: fmt.Sprintf("Your party is full, so %s could not join.", caught.Name()),
		})
	}
	return events
}

func (b *Battle) enemyFainted() []Event {
	enemy := b.Enemy()
	active := b.Active()
	events := []Event{{
		Kind: EventFainted, Side: SideEnemy, Monster: enemy.Monster,
		Text: fmt.Sprintf("%s fainted!", enemy.Name()),
	}}

	exp := b.cfg.ExpReward(enemy.Monster.Level)
	levels := active.Monster.GainExp(exp)
	events = append(events, Event{
		Kind: EventExpGained, Side: SidePlayer, Monster: active.Monster, Amount: exp,
		Text: fmt.Sprintf("%s gained %d exp.", active.Name(), exp),
	})
	if levels > 0 {
		events = append(events, Event{
			Kind: EventLeveledUp, Side: SidePlayer, Monster: active.Monster, Amount: levels,
			Text: fmt.Sprintf("%s grew to level %d!", active.Name(), active.Monster.Level),
		})
	}
	if active.Monster.CanEvolve() {
		prev, err := active.Monster.Evolve(b.catalog)
		if err != nil {
			log.Printf("Warning: %s could not evolve: %v", active.Name(), err)
		} else {
			active.Restore()
			events = append(events, Event{
				Kind: EventEvolved, Side: SidePlayer, Monster: active.Monster,
				Text: fmt.Sprintf("%s evolved into %s!", prev.Name, active.Name()),
			})
		}
	}

	if b.trainer != nil && b.enemyActive+1 < len(b.enemies) {
		b.enemyActive++
		next := b.Enemy()
		return append(events, Event{
			Kind: EventTrainerSendsOutNext, Side: SideEnemy, Monster: next.Monster,
			Text: fmt.Sprintf("%s sends out %s (Lv %d)!", b.trainer.Name(), next.Name(), next.Monster.Level),
		})
	}

	b.state = Won
	if b.trainer != nil {
		reward := 0
		if b.trainer.Defeat() {
			reward = b.cfg.Player.TrainerReward
			b.player.Money += reward
		}
		events = append(events, Event{
			Kind: EventTrainerDefeated, Side: SideEnemy, Amount: reward,
			Text: fmt.Sprintf("You defeated %s and earned $%d!", b.trainer.Name(), reward),
		})
		if b.onTrainerDefeated != nil {
			b.onTrainerDefeated(b.trainer)
		}
	}
	return events
}

func (b *Battle) playerFainted() []Event {
	active := b.Active()
	events := []Event{{
		Kind: EventFainted, Side: SidePlayer, Monster: active.Monster,
		Text: fmt.Sprintf("%s fainted!", active.Name()),
	}}
	if b.hasReserve() {
		b.awaitingSwitch = true
		return append(events, Event{Kind: EventSwitchRequired, Side: SidePlayer, Text: "Choose your next monster."})
	}

	b.state = Lost
	b.player.MoveTo(b.cfg.Player.RecoveryX, b.cfg.Player.RecoveryY)
	for _, c := range b.party {
		c.Restore()
	}
	events = append(events, Event{
		Kind: EventBlackedOut, Side: SidePlayer,
		Text: "You have no monsters left to fight. You blacked out and hurried back to safety.",
	})
	if b.onBlackout != nil {
		b.onBlackout()
	}
	return events
}
