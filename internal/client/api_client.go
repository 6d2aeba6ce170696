package client

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/config"
	"github.com/fadilmartias/talent-pipeline/internal/dto"
	"github.com/fadilmartias/talent-pipeline/internal/middleware"
	"github.com/fadilmartias/talent-pipeline/internal/pipeline"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Client calls the pipeline API as one recruiter.
type Client struct {
	http *resty.Client
}

func New(cfg config.BoardctlConfig) *Client {
	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Server, "/")).
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetHeader(middleware.HeaderUserID, cfg.UserID).
		SetHeader(middleware.HeaderUserRole, "recruiter")
	if cfg.UserEmail != "" {
		http.SetHeader(middleware.HeaderUserEmail, cfg.UserEmail)
	}
	return &Client{http: http}
}

// MyJobs lists the recruiter's own postings.
func (c *Client) MyJobs(ctx context.Context) ([]dto.JobDTO, error) {
	var out envelope[[]dto.JobDTO]
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"mine": "true", "page_size": "100"}).
		SetResult(&out).
		Get("/jobs")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) Board(ctx context.Context, jobID string) (*dto.BoardDTO, error) {
	var out envelope[dto.BoardDTO]
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", jobID).
		SetResult(&out).
		Get("/jobs/{id}/board")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// SetStage saves one application's stage. It satisfies pipeline.Persister,
// so a local board can run its transitions against the server.
func (c *Client) SetStage(ctx context.Context, applicationID, stage string, source pipeline.Source) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", applicationID).
		SetBody(dto.SetStageRequest{Stage: stage, Source: string(source)}).
		Put("/applications/{id}/stage")
	return check(resp, err)
}

// Export downloads the board workbook into w.
func (c *Client) Export(ctx context.Context, jobID string, w io.Writer) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", jobID).
		SetDoNotParseResponse(true).
		Get("/jobs/{id}/board/export")
	if err != nil {
		return err
	}
	body := resp.RawBody()
	defer body.Close()
	if resp.IsError() {
		raw, _ := io.ReadAll(body)
		return apiError(resp.StatusCode(), raw)
	}
	_, err = io.Copy(w, body)
	return err
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp.StatusCode(), resp.Body())
	}
	return nil
}

func apiError(status int, body []byte) error {
	msg := gjson.GetBytes(body, "message").String()
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	return &APIError{Status: status, Message: msg}
}
