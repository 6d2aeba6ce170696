package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	ErrNoStages            = errors.New("board needs at least one stage")
	ErrUnknownStage        = errors.New("unknown stage")
	ErrApplicationNotFound = errors.New("application is not on this board")
	ErrAtBoundary          = errors.New("no stage in that direction")
	ErrPersistFailed       = errors.New("stage change was not saved")
)

// Source records which gesture produced a move.
type Source string

const (
	SourceDirect Source = "direct"
	SourceStep   Source = "step"
	SourceDrag   Source = "drag"
)

// ParseSource maps a request value to a Source. Empty means direct.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case "", SourceDirect:
		return SourceDirect, nil
	case SourceStep, SourceDrag:
		return Source(s), nil
	}
	return "", fmt.Errorf("unknown move source %q", s)
}

// Direction of a sequential step.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// ParseDirection accepts "prev"/"next" (and "back"/"forward").
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "prev", "back", "backward":
		return Backward, nil
	case "next", "forward":
		return Forward, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Card is the board's view of one application.
type Card struct {
	ApplicationID  string
	CandidateName  string
	CandidateEmail string
	Score          *int
	Recommendation string
	HasResume      bool
	Stage          string
	AppliedAt      time.Time
}

// Column is one stage with the cards currently in it.
type Column struct {
	Stage string
	Cards []Card
}

// Move relocates one application between two columns. A move whose From and
// To are equal is a no-op and never reaches the persister.
type Move struct {
	ApplicationID string
	From          string
	To            string
	Source        Source

	gen uint64
	seq uint64
}

func (m Move) Noop() bool {
	return m.From == m.To
}

// Persister stores the new stage of an application. Failures come back as
// an error value; the board reverts and keeps working.
type Persister interface {
	SetStage(ctx context.Context, applicationID, stage string, source Source) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(ctx context.Context, applicationID, stage string, source Source) error

func (f PersisterFunc) SetStage(ctx context.Context, applicationID, stage string, source Source) error {
	return f(ctx, applicationID, stage, source)
}

// Outcome describes what a transition did to the board.
type Outcome struct {
	Move     Move
	Applied  bool
	Reverted bool
	Notice   string
}

// Board groups one job's applications by stage. Every application sits in
// exactly one column at all times. Moves are applied optimistically and then
// confirmed or reverted; confirmed holds the last known-good grouping.
type Board struct {
	mu        sync.Mutex
	stages    Stages
	columns   map[string][]Card
	confirmed map[string][]Card
	gen       uint64

	// seq numbers applied moves; latest and settled hold, per application,
	// the newest applied and the newest confirmed move.
	seq     uint64
	latest  map[string]uint64
	settled map[string]uint64
}

// NewBoard groups cards under stages. Cards whose stage is not declared land
// in the first stage.
func NewBoard(stages Stages, cards []Card) (*Board, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}
	columns := Group(stages, cards)
	return &Board{
		stages:    stages.Clone(),
		columns:   columns,
		confirmed: cloneColumns(columns),
		latest:    make(map[string]uint64),
		settled:   make(map[string]uint64),
	}, nil
}

// Group partitions cards by stage, seeding every declared stage with an
// empty column. Unknown stage values fall back to stages[0].
func Group(stages Stages, cards []Card) map[string][]Card {
	columns := make(map[string][]Card, len(stages))
	for _, stage := range stages {
		columns[stage] = []Card{}
	}
	if len(stages) == 0 {
		return columns
	}
	for _, card := range cards {
		if _, ok := columns[card.Stage]; !ok {
			card.Stage = stages[0]
		}
		columns[card.Stage] = append(columns[card.Stage], card)
	}
	return columns
}

func (b *Board) Stages() Stages {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stages.Clone()
}

// Columns returns the current grouping in stage order. Repeated stage names
// are rendered once.
func (b *Board) Columns() []Column {
	b.mu.Lock()
	defer b.mu.Unlock()
	return orderedColumns(b.stages, b.columns)
}

// Confirmed returns the last known-good grouping in stage order.
func (b *Board) Confirmed() []Column {
	b.mu.Lock()
	defer b.mu.Unlock()
	return orderedColumns(b.stages, b.confirmed)
}

// Locate returns the column currently holding the application.
func (b *Board) Locate(applicationID string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	stage, _, ok := locate(b.columns, applicationID)
	return stage, ok
}

// Card returns the application's card as currently displayed.
func (b *Board) Card(applicationID string) (Card, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	stage, idx, ok := locate(b.columns, applicationID)
	if !ok {
		return Card{}, false
	}
	return b.columns[stage][idx], true
}

// DirectMove plans a move to any declared stage.
func (b *Board) DirectMove(applicationID, target string) (Move, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	from, _, ok := locate(b.columns, applicationID)
	if !ok {
		return Move{}, ErrApplicationNotFound
	}
	if !b.stages.Contains(target) {
		return Move{}, fmt.Errorf("%w: %q", ErrUnknownStage, target)
	}
	return Move{ApplicationID: applicationID, From: from, To: target, Source: SourceDirect}, nil
}

// StepMove plans a move to the stage right before or after the current one.
// Positions are taken from the first occurrence of the current stage, and
// neighbours carrying the same name are skipped so a step always changes
// column.
func (b *Board) StepMove(applicationID string, dir Direction) (Move, error) {
	if dir != Forward && dir != Backward {
		return Move{}, fmt.Errorf("invalid direction %d", dir)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	from, _, ok := locate(b.columns, applicationID)
	if !ok {
		return Move{}, ErrApplicationNotFound
	}
	next := b.stages.Index(from) + int(dir)
	for next >= 0 && next < len(b.stages) && b.stages[next] == from {
		next += int(dir)
	}
	if next < 0 || next >= len(b.stages) {
		return Move{}, ErrAtBoundary
	}
	return Move{ApplicationID: applicationID, From: from, To: b.stages[next], Source: SourceStep}, nil
}

// DropMove plans a drag from one column onto another. Releasing on the origin
// column yields a no-op move.
func (b *Board) DropMove(applicationID, from, to string) (Move, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	current, _, ok := locate(b.columns, applicationID)
	if !ok {
		return Move{}, ErrApplicationNotFound
	}
	if from == to {
		return Move{ApplicationID: applicationID, From: current, To: current, Source: SourceDrag}, nil
	}
	if !b.stages.Contains(to) {
		return Move{}, fmt.Errorf("%w: %q", ErrUnknownStage, to)
	}
	return Move{ApplicationID: applicationID, From: current, To: to, Source: SourceDrag}, nil
}

// Apply is the optimistic phase: the card is relocated immediately. The
// returned move must later be passed to Confirm or Revert.
func (b *Board) Apply(m Move) (Move, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m.Noop() {
		return m, nil
	}
	if !b.stages.Contains(m.To) {
		return Move{}, fmt.Errorf("%w: %q", ErrUnknownStage, m.To)
	}
	current, _, ok := locate(b.columns, m.ApplicationID)
	if !ok {
		return Move{}, ErrApplicationNotFound
	}
	m.From = current
	if m.Noop() {
		return m, nil
	}
	relocate(b.columns, m.ApplicationID, m.To)
	b.seq++
	m.gen = b.gen
	m.seq = b.seq
	b.latest[m.ApplicationID] = m.seq
	return m, nil
}

// Confirm records a persisted move as known-good. A move that was rolled
// back by an earlier Revert is re-applied, since the store now holds it,
// unless a newer move of the same application has been applied since.
// Confirmations older than one already recorded are ignored.
func (b *Board) Confirm(m Move) {
	if m.Noop() {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if m.seq != 0 && m.seq < b.settled[m.ApplicationID] {
		return
	}
	b.settled[m.ApplicationID] = m.seq
	relocate(b.confirmed, m.ApplicationID, m.To)
	if m.gen != b.gen && m.seq >= b.latest[m.ApplicationID] {
		relocate(b.columns, m.ApplicationID, m.To)
	}
}

// Revert restores the last known-good grouping. Every move still awaiting
// confirmation is rolled back with it.
func (b *Board) Revert(m Move) {
	if m.Noop() {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.columns = cloneColumns(b.confirmed)
	b.gen++
}

// Transition is the single entry point every gesture converges on: apply,
// persist, then confirm or revert. No-op moves skip the persister.
func (b *Board) Transition(ctx context.Context, p Persister, m Move) (Outcome, error) {
	if m.Noop() {
		return Outcome{Move: m}, nil
	}
	applied, err := b.Apply(m)
	if err != nil {
		return Outcome{}, err
	}
	if applied.Noop() {
		return Outcome{Move: applied}, nil
	}
	return b.Settle(applied, p.SetStage(ctx, applied.ApplicationID, applied.To, applied.Source))
}

// Settle finishes an applied move once its save has returned: a nil
// persistErr confirms it, anything else reverts the board. Callers that
// persist asynchronously use Apply and Settle directly.
func (b *Board) Settle(applied Move, persistErr error) (Outcome, error) {
	if applied.Noop() {
		return Outcome{Move: applied}, nil
	}
	name := b.cardName(applied.ApplicationID)
	if persistErr != nil {
		b.Revert(applied)
		return Outcome{
			Move:     applied,
			Reverted: true,
			Notice:   fmt.Sprintf("Could not move %s to %s. Board reverted.", name, applied.To),
		}, fmt.Errorf("%w: %v", ErrPersistFailed, persistErr)
	}
	b.Confirm(applied)
	return Outcome{
		Move:    applied,
		Applied: true,
		Notice:  fmt.Sprintf("%s moved to %s", name, applied.To),
	}, nil
}

func (b *Board) cardName(applicationID string) string {
	card, ok := b.Card(applicationID)
	if !ok || card.CandidateName == "" {
		return "Candidate"
	}
	return card.CandidateName
}

func locate(columns map[string][]Card, applicationID string) (string, int, bool) {
	for stage, cards := range columns {
		for i, card := range cards {
			if card.ApplicationID == applicationID {
				return stage, i, true
			}
		}
	}
	return "", 0, false
}

// relocate removes the card from its column and appends it to target.
func relocate(columns map[string][]Card, applicationID, target string) {
	stage, idx, ok := locate(columns, applicationID)
	if !ok {
		return
	}
	card := columns[stage][idx]
	rest := make([]Card, 0, len(columns[stage])-1)
	rest = append(rest, columns[stage][:idx]...)
	columns[stage] = append(rest, columns[stage][idx+1:]...)
	card.Stage = target
	columns[target] = append(columns[target], card)
}

func cloneColumns(columns map[string][]Card) map[string][]Card {
	out := make(map[string][]Card, len(columns))
	for stage, cards := range columns {
		cp := make([]Card, len(cards))
		copy(cp, cards)
		out[stage] = cp
	}
	return out
}

func orderedColumns(stages Stages, columns map[string][]Card) []Column {
	seen := make(map[string]bool, len(stages))
	out := make([]Column, 0, len(stages))
	for _, stage := range stages {
		if seen[stage] {
			continue
		}
		seen[stage] = true
		cards := make([]Card, len(columns[stage]))
		copy(cards, columns[stage])
		out = append(out, Column{Stage: stage, Cards: cards})
	}
	return out
}
