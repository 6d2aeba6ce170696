package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/fadilmartias/talent-pipeline/internal/dto"
	"github.com/fadilmartias/talent-pipeline/internal/events"
	"github.com/fadilmartias/talent-pipeline/internal/model"
	"github.com/fadilmartias/talent-pipeline/internal/pipeline"
	"github.com/fadilmartias/talent-pipeline/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boardFixture struct {
	uc     *PipelineUsecase
	apps   *fakeApps
	pub    *recordingPublisher
	job    *model.Job
	ana    *model.Application
	bruno  *model.Application
	orphan *model.Application
}

func newBoardFixture() *boardFixture {
	job := testJob(recruiter.UserID, "Screening", "Interview", "Offer")
	ana := testApp(job, "Ana", "Screening")
	bruno := testApp(job, "Bruno", "Interview")
	orphan := testApp(job, "Carla", "Removed Stage")
	apps := newFakeApps(ana, bruno, orphan)
	pub := &recordingPublisher{}
	return &boardFixture{
		uc:     NewPipelineUsecase(apps, newFakeJobs(job), pub, nil),
		apps:   apps,
		pub:    pub,
		job:    job,
		ana:    ana,
		bruno:  bruno,
		orphan: orphan,
	}
}

func stageOf(board dto.BoardDTO, applicationID string) []string {
	var stages []string
	for _, col := range board.Columns {
		for _, c := range col.Cards {
			if c.ApplicationID == applicationID {
				stages = append(stages, col.Stage)
			}
		}
	}
	return stages
}

func TestGetBoard(t *testing.T) {
	f := newBoardFixture()

	board, err := f.uc.GetBoard(context.Background(), recruiter, f.job.ID.String())
	require.NoError(t, err)

	assert.Equal(t, []string{"Screening", "Interview", "Offer"}, board.Stages)
	require.Len(t, board.Columns, 3)
	assert.Equal(t, []string{"Screening"}, stageOf(*board, f.orphan.ID.String()), "undeclared stage falls back to the first column")
	assert.Equal(t, []string{"Interview"}, stageOf(*board, f.bruno.ID.String()))

	_, err = f.uc.GetBoard(context.Background(), otherRecruiter, f.job.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.uc.GetBoard(context.Background(), nil, f.job.ID.String())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.uc.GetBoard(context.Background(), recruiter, "6f1c1f5e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMove_Modes(t *testing.T) {
	tests := []struct {
		name      string
		req       func(f *boardFixture) dto.MoveRequest
		wantStage string
		source    pipeline.Source
	}{
		{"direct", func(f *boardFixture) dto.MoveRequest {
			return dto.MoveRequest{ApplicationID: f.ana.ID.String(), Mode: ModeDirect, Target: "Offer"}
		}, "Offer", pipeline.SourceDirect},
		{"mode defaults to direct", func(f *boardFixture) dto.MoveRequest {
			return dto.MoveRequest{ApplicationID: f.ana.ID.String(), Target: "Interview"}
		}, "Interview", pipeline.SourceDirect},
		{"step forward", func(f *boardFixture) dto.MoveRequest {
			return dto.MoveRequest{ApplicationID: f.ana.ID.String(), Mode: ModeStep, Direction: "next"}
		}, "Interview", pipeline.SourceStep},
		{"step back", func(f *boardFixture) dto.MoveRequest {
			return dto.MoveRequest{ApplicationID: f.bruno.ID.String(), Mode: ModeStep, Direction: "prev"}
		}, "Screening", pipeline.SourceStep},
		{"drag", func(f *boardFixture) dto.MoveRequest {
			return dto.MoveRequest{ApplicationID: f.bruno.ID.String(), Mode: ModeDrag, From: "Interview", To: "Offer"}
		}, "Offer", pipeline.SourceDrag},
		{"orphan moves from the fallback column", func(f *boardFixture) dto.MoveRequest {
			return dto.MoveRequest{ApplicationID: f.orphan.ID.String(), Mode: ModeStep, Direction: "next"}
		}, "Interview", pipeline.SourceStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBoardFixture()
			req := tt.req(f)

			res, err := f.uc.Move(context.Background(), recruiter, f.job.ID.String(), req)
			require.NoError(t, err)

			assert.True(t, res.Applied)
			assert.False(t, res.Reverted)
			assert.Equal(t, tt.wantStage, res.To)
			assert.Equal(t, string(tt.source), res.Source)
			assert.Equal(t, []string{tt.wantStage}, stageOf(res.Board, req.ApplicationID))
			assert.Equal(t, tt.wantStage, f.apps.apps[req.ApplicationID].Stage)

			require.Len(t, f.apps.transitions, 1)
			assert.Equal(t, recruiter.UserID, f.apps.transitions[0].ActorID)
			require.Len(t, f.pub.events, 1)
			assert.Equal(t, events.ApplicationStageChanged, f.pub.events[0].Type)
			assert.Equal(t, tt.wantStage, f.pub.events[0].ToStage)
		})
	}
}

func TestMove_PersistFailureReverts(t *testing.T) {
	f := newBoardFixture()
	f.apps.setStageErr = errBoom

	res, err := f.uc.Move(context.Background(), recruiter, f.job.ID.String(), dto.MoveRequest{
		ApplicationID: f.ana.ID.String(), Mode: ModeDrag, From: "Screening", To: "Offer",
	})

	require.ErrorIs(t, err, pipeline.ErrPersistFailed)
	require.NotNil(t, res)
	assert.True(t, res.Reverted)
	assert.False(t, res.Applied)
	assert.Contains(t, res.Notice, "Ana")
	assert.Equal(t, []string{"Screening"}, stageOf(res.Board, f.ana.ID.String()))
	assert.Equal(t, "Screening", f.apps.apps[f.ana.ID.String()].Stage)
	assert.Empty(t, f.pub.events)
}

func TestMove_DropOnOriginIsNoop(t *testing.T) {
	f := newBoardFixture()

	res, err := f.uc.Move(context.Background(), recruiter, f.job.ID.String(), dto.MoveRequest{
		ApplicationID: f.ana.ID.String(), Mode: ModeDrag, From: "Screening", To: "Screening",
	})
	require.NoError(t, err)

	assert.False(t, res.Applied)
	assert.False(t, res.Reverted)
	assert.Zero(t, f.apps.setCalls)
	assert.Empty(t, f.pub.events)
}

func TestMove_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		req   func(f *boardFixture) dto.MoveRequest
		field string
	}{
		{"step before the first stage", func(f *boardFixture) dto.MoveRequest {
			return dto.MoveRequest{ApplicationID: f.ana.ID.String(), Mode: ModeStep, Direction: "prev"}
		}, "direction"},
		{"bad direction", func(f *boardFixture) dto.MoveRequest {
			return dto.MoveRequest{ApplicationID: f.ana.ID.String(), Mode: ModeStep, Direction: "sideways"}
		}, "direction"},
		{"unknown target", func(f *boardFixture) dto.MoveRequest {
			return dto.MoveRequest{ApplicationID: f.ana.ID.String(), Target: "Nowhere"}
		}, "target"},
		{"unknown mode", func(f *boardFixture) dto.MoveRequest {
			return dto.MoveRequest{ApplicationID: f.ana.ID.String(), Mode: "teleport"}
		}, "mode"},
		{"missing application", func(f *boardFixture) dto.MoveRequest {
			return dto.MoveRequest{Target: "Offer"}
		}, "application_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBoardFixture()
			_, err := f.uc.Move(context.Background(), recruiter, f.job.ID.String(), tt.req(f))

			var formErr *util.FormError
			require.ErrorAs(t, err, &formErr)
			assert.Contains(t, formErr.Errors, tt.field)
			assert.Zero(t, f.apps.setCalls)
		})
	}
}

func TestMove_ApplicationFromAnotherJob(t *testing.T) {
	f := newBoardFixture()
	_, err := f.uc.Move(context.Background(), recruiter, f.job.ID.String(), dto.MoveRequest{
		ApplicationID: "6f1c1f5e-0000-4000-8000-000000000000", Target: "Offer",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetStage(t *testing.T) {
	f := newBoardFixture()

	res, err := f.uc.SetStage(context.Background(), recruiter, f.bruno.ID.String(), "Offer", "step")
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "step", res.Source)
	assert.Equal(t, "Offer", f.apps.apps[f.bruno.ID.String()].Stage)
	assert.Equal(t, "step", f.apps.transitions[0].Source)

	_, err = f.uc.SetStage(context.Background(), otherRecruiter, f.bruno.ID.String(), "Offer", "")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.uc.SetStage(context.Background(), recruiter, f.bruno.ID.String(), "Offer", "teleport")
	var formErr *util.FormError
	require.ErrorAs(t, err, &formErr)
	assert.Contains(t, formErr.Errors, "source")
}

func TestExportBoard(t *testing.T) {
	f := newBoardFixture()
	var buf bytes.Buffer

	title, err := f.uc.ExportBoard(context.Background(), recruiter, f.job.ID.String(), &buf)
	require.NoError(t, err)
	assert.Equal(t, f.job.Title, title)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")), "xlsx is a zip archive")

	_, err = f.uc.ExportBoard(context.Background(), otherRecruiter, f.job.ID.String(), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrForbidden)
}
