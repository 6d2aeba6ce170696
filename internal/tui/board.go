package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fadilmartias/talent-pipeline/internal/dto"
	"github.com/fadilmartias/talent-pipeline/internal/pipeline"
)

// Backend is what the board needs from the server.
type Backend interface {
	Board(ctx context.Context, jobID string) (*dto.BoardDTO, error)
	SetStage(ctx context.Context, applicationID, stage string, source pipeline.Source) error
}

// BoardLoadedMsg carries a freshly fetched board. Exported so tests can
// feed it straight into Update.
type BoardLoadedMsg struct {
	Board *dto.BoardDTO
	Err   error
}

// MoveSavedMsg reports the result of persisting an applied move.
type MoveSavedMsg struct {
	Move pipeline.Move
	Err  error
}

type clearNoticeMsg struct{ seq int }

const noticeTTL = 4 * time.Second

// held is a card picked up for a drag.
type held struct {
	applicationID string
	from          string
}

// BoardModel is one recruiter's session on one job's board. Moves are shown
// at once and saved in the background; a failed save reverts the board.
type BoardModel struct {
	backend Backend
	jobID   string
	timeout time.Duration

	title   string
	board   *pipeline.Board
	col     int
	row     int
	holding *held
	pending int

	notice    string
	noticeErr bool
	noticeSeq int
	loading   bool
	err       error
	width     int
}

func NewBoardModel(backend Backend, jobID string, timeout time.Duration) BoardModel {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return BoardModel{backend: backend, jobID: jobID, timeout: timeout, loading: true}
}

func (m BoardModel) Init() tea.Cmd {
	return m.load()
}

func (m BoardModel) load() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		b, err := m.backend.Board(ctx, m.jobID)
		return BoardLoadedMsg{Board: b, Err: err}
	}
}

func (m BoardModel) save(move pipeline.Move) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		err := m.backend.SetStage(ctx, move.ApplicationID, move.To, move.Source)
		return MoveSavedMsg{Move: move, Err: err}
	}
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case BoardLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		board, err := pipeline.NewBoard(msg.Board.Stages, msg.Board.Cards())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.board = board
		m.title = msg.Board.Title
		m.holding = nil
		m.clampCursor()
		return m, nil

	case MoveSavedMsg:
		m.pending--
		if m.board == nil {
			return m, nil
		}
		out, err := m.board.Settle(msg.Move, msg.Err)
		m.clampCursor()
		return m.flash(out.Notice, err != nil)

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m BoardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		return m, m.load()
	}
	if m.board == nil {
		return m, nil
	}

	switch key := msg.String(); key {
	case "left", "h":
		m.col--
		m.clampCursor()
	case "right", "l":
		m.col++
		m.clampCursor()
	case "up", "k":
		m.row--
		m.clampCursor()
	case "down", "j":
		m.row++
		m.clampCursor()
	case "esc":
		m.holding = nil
	case "[", "]":
		card, ok := m.selected()
		if !ok {
			return m, nil
		}
		dir := pipeline.Forward
		if key == "[" {
			dir = pipeline.Backward
		}
		move, err := m.board.StepMove(card.ApplicationID, dir)
		return m.run(move, err)
	case " ":
		card, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.holding = &held{applicationID: card.ApplicationID, from: card.Stage}
		return m.flash(fmt.Sprintf("Holding %s. Pick a column and press enter.", displayName(card)), false)
	case "enter":
		if m.holding == nil {
			return m, nil
		}
		h := *m.holding
		m.holding = nil
		move, err := m.board.DropMove(h.applicationID, h.from, m.columnStage())
		return m.run(move, err)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			card, ok := m.selected()
			if !ok {
				return m, nil
			}
			stages := m.board.Stages()
			idx := int(key[0] - '1')
			if idx >= len(stages) {
				return m.flash(fmt.Sprintf("No stage %s", key), true)
			}
			move, err := m.board.DirectMove(card.ApplicationID, stages[idx])
			return m.run(move, err)
		}
	}
	return m, nil
}

// run applies a planned move and starts saving it.
func (m BoardModel) run(move pipeline.Move, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		if errors.Is(err, pipeline.ErrAtBoundary) {
			return m.flash("No stage in that direction", true)
		}
		return m.flash(err.Error(), true)
	}
	applied, err := m.board.Apply(move)
	if err != nil {
		return m.flash(err.Error(), true)
	}
	if applied.Noop() {
		return m, nil
	}
	m.pending++
	m.followCard(applied.ApplicationID)
	return m, m.save(applied)
}

func (m BoardModel) flash(text string, isErr bool) (tea.Model, tea.Cmd) {
	if text == "" {
		return m, nil
	}
	m.noticeSeq++
	m.notice = text
	m.noticeErr = isErr
	seq := m.noticeSeq
	return m, tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}

func (m *BoardModel) columns() []pipeline.Column {
	if m.board == nil {
		return nil
	}
	return m.board.Columns()
}

func (m *BoardModel) columnStage() string {
	cols := m.columns()
	if len(cols) == 0 {
		return ""
	}
	return cols[m.col].Stage
}

func (m *BoardModel) selected() (pipeline.Card, bool) {
	cols := m.columns()
	if len(cols) == 0 || m.row >= len(cols[m.col].Cards) {
		return pipeline.Card{}, false
	}
	return cols[m.col].Cards[m.row], true
}

// followCard moves the cursor onto the card's new position.
func (m *BoardModel) followCard(applicationID string) {
	for ci, col := range m.columns() {
		for ri, c := range col.Cards {
			if c.ApplicationID == applicationID {
				m.col, m.row = ci, ri
				return
			}
		}
	}
}

func (m *BoardModel) clampCursor() {
	cols := m.columns()
	if len(cols) == 0 {
		m.col, m.row = 0, 0
		return
	}
	m.col = max(0, min(m.col, len(cols)-1))
	m.row = max(0, min(m.row, len(cols[m.col].Cards)-1))
}

func displayName(c pipeline.Card) string {
	if strings.TrimSpace(c.CandidateName) == "" {
		return "Candidate"
	}
	return c.CandidateName
}
