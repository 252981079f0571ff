package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kotosiro/controller/domain"
	"github.com/kotosiro/controller/policy"
)

func registerJobRoutes(e *echo.Echo, c *Controller) {
	e.POST("/api/job", createJob(c))
	e.DELETE("/api/job/:id", deleteJob(c))
}

type createJobRequest struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	WorkflowID string   `json:"workflow_id"`
	Threshold  int32    `json:"threshold"`
	Image      string   `json:"image"`
	Args       []string `json:"args"`
	Envs       []string `json:"envs"`
}

// createJob upserts a job by (name, workflow_id), authorizing as an update
// on the workflow named in the payload - a job has no identity apart from
// the workflow it belongs to.
func createJob(c *Controller) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var req createJobRequest
		if err := ctx.Bind(&req); err != nil {
			return errValidation()
		}
		id := req.ID
		if id == "" {
			id = uuid.NewString()
		}
		jobID, err := domain.NewJobID(id)
		if err != nil {
			return errValidation()
		}
		workflowID, err := domain.NewWorkflowID(req.WorkflowID)
		if err != nil {
			return errValidation()
		}
		name, err := domain.NewJobName(req.Name)
		if err != nil {
			return errValidation()
		}
		threshold, err := domain.NewThreshold(req.Threshold)
		if err != nil {
			return errValidation()
		}
		image, err := domain.NewImage(req.Image)
		if err != nil {
			return errValidation()
		}
		job, err := domain.NewJob(jobID, name, workflowID, threshold, image, domain.NewArgs(req.Args), domain.NewEnvs(req.Envs))
		if err != nil {
			return errValidation()
		}

		event := policy.UpdateEvent().WithToken(tokenFrom(ctx)).OnWorkflow(workflowID.UUID(), nil)
		if err := c.Gate.Authorize(ctx.Request().Context(), event); err != nil {
			return classify(err)
		}

		if err := c.Jobs.Create(ctx.Request().Context(), job); err != nil {
			return classify(err)
		}
		c.Broker.PublishJob(jobID.UUID())

		return ctx.JSON(http.StatusCreated, echo.Map{
			"id":          job.ID().String(),
			"name":        job.Name().String(),
			"workflow_id": job.WorkflowID().String(),
			"threshold":   job.Threshold().Int32(),
			"image":       job.Image().String(),
			"args":        domain.ArgStrings(job.Args()),
			"envs":        domain.EnvStrings(job.Envs()),
		})
	}
}

// deleteJob resolves the owning workflow before authorizing, since a job id
// alone carries no workflow-scoped information for the sidecar to judge.
func deleteJob(c *Controller) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := domain.NewJobID(ctx.Param("id"))
		if err != nil {
			return errBadRequest()
		}
		workflowID, err := c.Jobs.GetWorkflowID(ctx.Request().Context(), id)
		if err != nil {
			return classify(err)
		}
		if workflowID == nil {
			return ctx.NoContent(http.StatusNotFound)
		}

		event := policy.DeleteEvent().WithToken(tokenFrom(ctx)).OnWorkflow(*workflowID, nil)
		if err := c.Gate.Authorize(ctx.Request().Context(), event); err != nil {
			return classify(err)
		}

		affected, err := c.Jobs.Delete(ctx.Request().Context(), id)
		if err != nil {
			return errInternal()
		}
		if affected != 1 {
			return ctx.NoContent(http.StatusNotFound)
		}
		c.Broker.PublishJob(id.UUID())
		return ctx.NoContent(http.StatusNoContent)
	}
}
