package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/auth"
	"github.com/fadilmartias/talent-pipeline/internal/dto"
	"github.com/fadilmartias/talent-pipeline/internal/events"
	"github.com/fadilmartias/talent-pipeline/internal/export"
	"github.com/fadilmartias/talent-pipeline/internal/model"
	"github.com/fadilmartias/talent-pipeline/internal/pipeline"
	"github.com/fadilmartias/talent-pipeline/internal/util"
)

// Move modes accepted by PipelineUsecase.Move.
const (
	ModeDirect = "direct"
	ModeStep   = "step"
	ModeDrag   = "drag"
)

// PipelineUsecase serves a job's board to its recruiter and runs every stage
// change through pipeline.Board.Transition.
type PipelineUsecase struct {
	apps          ApplicationStore
	jobs          JobStore
	publisher     events.Publisher
	defaultStages pipeline.Stages
}

func NewPipelineUsecase(apps ApplicationStore, jobs JobStore, publisher events.Publisher, defaultStages pipeline.Stages) *PipelineUsecase {
	return &PipelineUsecase{
		apps:          apps,
		jobs:          jobs,
		publisher:     publisher,
		defaultStages: defaultStages.OrDefault(),
	}
}

func (uc *PipelineUsecase) GetBoard(ctx context.Context, id *auth.Identity, jobID string) (*dto.BoardDTO, error) {
	job, board, err := uc.loadBoard(ctx, id, jobID)
	if err != nil {
		return nil, err
	}
	view := dto.NewBoardDTO(job.ID.String(), job.Title, board.Stages(), board.Columns())
	return &view, nil
}

// Move resolves a direct, step or drag request into one move and runs it.
func (uc *PipelineUsecase) Move(ctx context.Context, id *auth.Identity, jobID string, req dto.MoveRequest) (*dto.MoveResultDTO, error) {
	job, board, err := uc.loadBoard(ctx, id, jobID)
	if err != nil {
		return nil, err
	}
	move, err := planMove(board, req)
	if err != nil {
		return nil, err
	}
	return uc.transition(ctx, id, job, board, move)
}

// SetStage moves one application straight to stage.
func (uc *PipelineUsecase) SetStage(ctx context.Context, id *auth.Identity, applicationID, stage, source string) (*dto.MoveResultDTO, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	app, err := uc.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	src, err := pipeline.ParseSource(source)
	if err != nil {
		return nil, util.NewFormError("invalid move", map[string]string{"source": err.Error()})
	}
	job, board, err := uc.loadBoard(ctx, id, app.JobID.String())
	if err != nil {
		return nil, err
	}
	move, err := board.DirectMove(applicationID, strings.TrimSpace(stage))
	if err != nil {
		return nil, moveError(err)
	}
	move.Source = src
	return uc.transition(ctx, id, job, board, move)
}

// ExportBoard writes the board as an XLSX workbook and returns the job title.
func (uc *PipelineUsecase) ExportBoard(ctx context.Context, id *auth.Identity, jobID string, w io.Writer) (string, error) {
	job, board, err := uc.loadBoard(ctx, id, jobID)
	if err != nil {
		return "", err
	}
	if err := export.WriteBoardXLSX(w, job.Title, board.Columns(), time.Now()); err != nil {
		return "", fmt.Errorf("export board: %w", err)
	}
	return job.Title, nil
}

func (uc *PipelineUsecase) transition(ctx context.Context, id *auth.Identity, job *model.Job, board *pipeline.Board, move pipeline.Move) (*dto.MoveResultDTO, error) {
	persist := pipeline.PersisterFunc(func(ctx context.Context, applicationID, stage string, source pipeline.Source) error {
		return uc.apps.SetStage(ctx, applicationID, stage, string(source), id.UserID)
	})

	outcome, err := board.Transition(ctx, persist, move)
	// After a failed save the board carried back is the reverted one.
	result := &dto.MoveResultDTO{
		ApplicationID: outcome.Move.ApplicationID,
		From:          outcome.Move.From,
		To:            outcome.Move.To,
		Source:        string(outcome.Move.Source),
		Applied:       outcome.Applied,
		Reverted:      outcome.Reverted,
		Notice:        outcome.Notice,
		Board:         dto.NewBoardDTO(job.ID.String(), job.Title, board.Stages(), board.Columns()),
	}
	if err != nil {
		if errors.Is(err, pipeline.ErrPersistFailed) {
			return result, err
		}
		return nil, moveError(err)
	}

	if outcome.Applied {
		events.Emit(ctx, uc.publisher, events.Event{
			Type:          events.ApplicationStageChanged,
			ApplicationID: outcome.Move.ApplicationID,
			JobID:         job.ID.String(),
			FromStage:     outcome.Move.From,
			ToStage:       outcome.Move.To,
			Source:        string(outcome.Move.Source),
			ActorID:       id.UserID,
		})
	}
	return result, nil
}

func (uc *PipelineUsecase) loadBoard(ctx context.Context, id *auth.Identity, jobID string) (*model.Job, *pipeline.Board, error) {
	if err := requireIdentity(id); err != nil {
		return nil, nil, err
	}
	job, err := uc.jobs.FindJobByID(ctx, jobID)
	if err != nil {
		return nil, nil, mapStoreErr(err)
	}
	if err := requireJobOwner(id, job); err != nil {
		return nil, nil, err
	}

	apps, err := uc.apps.FindByJob(ctx, jobID)
	if err != nil {
		return nil, nil, fmt.Errorf("load applications: %w", err)
	}
	cards := make([]pipeline.Card, 0, len(apps))
	for _, a := range apps {
		cards = append(cards, pipeline.Card{
			ApplicationID:  a.ID.String(),
			CandidateName:  a.CandidateName,
			CandidateEmail: a.CandidateEmail,
			Score:          a.Score,
			Recommendation: a.Recommendation,
			HasResume:      a.ResumeKey != "",
			Stage:          a.Stage,
			AppliedAt:      a.CreatedAt,
		})
	}

	stages := pipeline.Stages(job.Stages).Normalize()
	if len(stages) == 0 {
		stages = uc.defaultStages
	}
	board, err := pipeline.NewBoard(stages, cards)
	if err != nil {
		return nil, nil, err
	}
	return job, board, nil
}

func planMove(board *pipeline.Board, req dto.MoveRequest) (pipeline.Move, error) {
	appID := strings.TrimSpace(req.ApplicationID)
	if appID == "" {
		return pipeline.Move{}, util.NewFormError("invalid move", map[string]string{"application_id": "application is required"})
	}

	var (
		move pipeline.Move
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(req.Mode)) {
	case "", ModeDirect:
		move, err = board.DirectMove(appID, req.Target)
	case ModeStep:
		dir, perr := pipeline.ParseDirection(strings.ToLower(req.Direction))
		if perr != nil {
			return pipeline.Move{}, util.NewFormError("invalid move", map[string]string{"direction": perr.Error()})
		}
		move, err = board.StepMove(appID, dir)
	case ModeDrag:
		move, err = board.DropMove(appID, req.From, req.To)
	default:
		return pipeline.Move{}, util.NewFormError("invalid move", map[string]string{"mode": fmt.Sprintf("unknown mode %q", req.Mode)})
	}
	if err != nil {
		return pipeline.Move{}, moveError(err)
	}
	return move, nil
}

// moveError turns board rule violations into validation errors.
func moveError(err error) error {
	switch {
	case errors.Is(err, pipeline.ErrApplicationNotFound):
		return ErrNotFound
	case errors.Is(err, pipeline.ErrUnknownStage):
		return util.NewFormError("invalid move", map[string]string{"target": err.Error()})
	case errors.Is(err, pipeline.ErrAtBoundary):
		return util.NewFormError("invalid move", map[string]string{"direction": err.Error()})
	}
	return err
}
