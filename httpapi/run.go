package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kotosiro/controller/domain"
	"github.com/kotosiro/controller/policy"
)

func registerRunRoutes(e *echo.Echo, c *Controller) {
	e.POST("/api/run", createRun(c))
}

type createRunRequest struct {
	ID       string `json:"id"`
	JobID    string `json:"job_id"`
	Priority string `json:"priority"`
}

// createRun triggers a new run of a job. The authorization target is the
// workflow the job belongs to, so the job's workflow id is resolved before
// the gate is asked - there is no row yet for the run itself to anchor on.
func createRun(c *Controller) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var req createRunRequest
		if err := ctx.Bind(&req); err != nil {
			return errValidation()
		}
		id := req.ID
		if id == "" {
			id = uuid.NewString()
		}
		runID, err := domain.NewRunID(id)
		if err != nil {
			return errValidation()
		}
		jobID, err := domain.NewJobID(req.JobID)
		if err != nil {
			return errValidation()
		}
		priority := domain.DefaultRunPriority
		if req.Priority != "" {
			priority, err = domain.ParseRunPriority(req.Priority)
			if err != nil {
				return errValidation()
			}
		}
		run, err := domain.NewRun(runID, domain.TokenWaiting, priority, jobID, time.Now())
		if err != nil {
			return errValidation()
		}

		workflowID, err := c.Jobs.GetWorkflowID(ctx.Request().Context(), jobID)
		if err != nil {
			return classify(err)
		}
		if workflowID == nil {
			return errValidation()
		}

		event := policy.UpdateEvent().WithToken(tokenFrom(ctx)).OnWorkflow(*workflowID, nil)
		if err := c.Gate.Authorize(ctx.Request().Context(), event); err != nil {
			return classify(err)
		}

		if err := c.Runs.Create(ctx.Request().Context(), run); err != nil {
			return classify(err)
		}
		if projectID, err := c.Workflows.GetProjectID(ctx.Request().Context(), domain.WorkflowIDFromUUID(*workflowID)); err == nil && projectID != nil {
			c.Broker.PublishProject(*projectID)
		}

		return ctx.JSON(http.StatusCreated, echo.Map{
			"id":           run.ID().String(),
			"job_id":       run.JobID().String(),
			"state":        run.State().String(),
			"priority":     run.Priority().String(),
			"triggered_at": run.TriggeredAt(),
		})
	}
}
