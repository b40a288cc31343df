// internal/workers/recommendation/explain-match/handler.go
package explainmatch

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
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "explain-match"
)

var inputSchema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"properties": {
		"userId": {"type": "string"},
		"profile": {"type": "object"},
		"job": {"type": "object"}
	},
	"required": ["job"]
}`)

type Handler struct {
	config   *Config
	profiles *store.ProfileStore
	engine   *recommend.Engine
	logger   logger.Logger
	obs      *observability.Observability
	now      func() time.Time
}

func NewHandler(
	config *Config,
	profiles *store.ProfileStore,
	engine *recommend.Engine,
	log logger.Logger,
	obs *observability.Observability,
) *Handler {
	return &Handler{
		config:   config,
		profiles: profiles,
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
	profile := h.resolveProfile(ctx, input)
	now := h.now()

	scored := h.engine.ScoreJobs(profile, []recommend.Job{input.Job}, now)
	if len(scored) == 0 {
		return nil, cerrors.Newf(cerrors.ErrCodeExplanationFailed, false, "no score produced for job %s", input.Job.ID)
	}

	output := &Output{
		MatchScore:  scored[0].MatchScore,
		Explanation: h.engine.Explain(profile, input.Job, now),
	}

	h.logger.Info("explanation produced", map[string]interface{}{
		"userId":     input.UserID,
		"jobId":      input.Job.ID,
		"matchScore": output.MatchScore,
	})
	return output, nil
}

func (h *Handler) resolveProfile(ctx context.Context, input *Input) recommend.Profile {
	if input.Profile != nil {
		return *input.Profile
	}
	if input.UserID == "" || h.profiles == nil {
		return recommend.Profile{}
	}

	profile, err := h.profiles.Get(ctx, input.UserID)
	if err != nil {
		h.logger.WithError(err).Warn("profile lookup failed, explaining neutrally", map[string]interface{}{
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

// Execute exposes the explanation path for tests and direct callers.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
