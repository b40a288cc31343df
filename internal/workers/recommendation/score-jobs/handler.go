// internal/workers/recommendation/score-jobs/handler.go
package scorejobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	cerrors "jobboard-workers/internal/common/errors"
	"jobboard-workers/internal/common/logger"
	"jobboard-workers/internal/common/metrics"
	"jobboard-workers/internal/common/observability"
	"jobboard-workers/internal/recommend"
	"jobboard-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "score-jobs"
)

var inputSchema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"properties": {
		"userId": {"type": "string"},
		"profile": {"type": "object"},
		"jobs": {"type": "array"},
		"limit": {"type": "integer", "minimum": 0}
	}
}`)

type Handler struct {
	config   *Config
	profiles *store.ProfileStore
	postings *store.PostingSource
	engine   *recommend.Engine
	logger   logger.Logger
	obs      *observability.Observability
	now      func() time.Time
}

func NewHandler(
	config *Config,
	profiles *store.ProfileStore,
	postings *store.PostingSource,
	engine *recommend.Engine,
	log logger.Logger,
	obs *observability.Observability,
) *Handler {
	return &Handler{
		config:   config,
		profiles: profiles,
		postings: postings,
		engine:   engine,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
		obs:      obs,
		now:      time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(elapsed.Seconds())
		h.obs.RecordJobDuration(context.Background(), elapsed, TaskType)
	}()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	if err := validateInput(job.Variables); err != nil {
		h.failJob(client, job, string(cerrors.ErrCodeInvalidRecommendationInput), err.Error())
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, string(cerrors.ErrCodeParseError), fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, string(cerrors.CodeOf(err)), err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	scoringID := uuid.NewString()
	log := h.logger.WithFields(map[string]interface{}{"scoringId": scoringID})
	start := time.Now()

	profile := h.resolveProfile(ctx, input, log)

	jobs := input.Jobs
	if len(jobs) == 0 && h.postings != nil {
		fetched, err := h.postings.Open(ctx)
		if err != nil {
			return nil, cerrors.Newf(cerrors.ErrCodePostingsUnavailable, true, "fetch open postings: %v", err)
		}
		jobs = fetched
	}

	ranked := h.engine.ScoreJobs(profile, jobs, h.now())
	total := len(ranked)
	if input.Limit > 0 && len(ranked) > input.Limit {
		ranked = ranked[:input.Limit]
	}

	metrics.PostingsScored.WithLabelValues(TaskType).Observe(float64(total))

	duration := time.Since(start)
	log.Info("scoring pass completed", map[string]interface{}{
		"userId":     input.UserID,
		"scored":     total,
		"returned":   len(ranked),
		"durationMs": duration.Milliseconds(),
	})
	if duration > h.config.SlowPassThreshold {
		log.Warn("scoring pass exceeded threshold", map[string]interface{}{
			"durationMs": duration.Milliseconds(),
		})
	}

	return &Output{
		ScoringID:       scoringID,
		Recommendations: ranked,
		TotalScored:     total,
	}, nil
}

// resolveProfile prefers an inline profile, then the profile store. A
// seeker it cannot load still gets scored, neutrally on every criterion.
func (h *Handler) resolveProfile(ctx context.Context, input *Input, log logger.Logger) recommend.Profile {
	if input.Profile != nil {
		return *input.Profile
	}
	if input.UserID == "" || h.profiles == nil {
		return recommend.Profile{}
	}

	profile, err := h.profiles.Get(ctx, input.UserID)
	if err != nil {
		log.WithError(err).Warn("profile lookup failed, scoring neutrally", map[string]interface{}{
			"userId": input.UserID,
		})
		return recommend.Profile{}
	}
	return *profile
}

func validateInput(variables string) error {
	result, err := gojsonschema.Validate(inputSchema, gojsonschema.NewStringLoader(variables))
	if err != nil {
		return cerrors.Newf(cerrors.ErrCodeInvalidRecommendationInput, false, "validate input: %v", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, verr := range result.Errors() {
			msgs = append(msgs, verr.String())
		}
		return cerrors.Newf(cerrors.ErrCodeInvalidRecommendationInput, false, "invalid input: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.obs.RecordJobProcessed(context.Background(), "completed")
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.obs.RecordJobProcessed(context.Background(), "failed")
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

// Execute exposes the scoring path for tests and direct callers.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
