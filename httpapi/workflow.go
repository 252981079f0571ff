package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kotosiro/controller/domain"
	"github.com/kotosiro/controller/policy"
)

func registerWorkflowRoutes(e *echo.Echo, c *Controller) {
	e.POST("/api/workflow", createWorkflow(c))
	e.GET("/api/workflow/:id", getWorkflow(c))
	e.DELETE("/api/workflow/:id", deleteWorkflow(c))
}

type createWorkflowRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ProjectID   string `json:"project_id"`
	Description string `json:"description"`
	Paused      bool   `json:"paused"`
}

// createWorkflow upserts a workflow by id, authorizing against the
// project it belongs to - the project id is part of the payload here,
// since there is no existing row yet to resolve it from.
func createWorkflow(c *Controller) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var req createWorkflowRequest
		if err := ctx.Bind(&req); err != nil {
			return errValidation()
		}
		id := req.ID
		if id == "" {
			id = uuid.NewString()
		}
		workflowID, err := domain.NewWorkflowID(id)
		if err != nil {
			return errValidation()
		}
		projectID, err := domain.NewProjectID(req.ProjectID)
		if err != nil {
			return errValidation()
		}
		name, err := domain.NewWorkflowName(req.Name)
		if err != nil {
			return errValidation()
		}
		description, err := domain.NewDescription(req.Description)
		if err != nil {
			return errValidation()
		}
		workflow, err := domain.NewWorkflow(workflowID, name, projectID, description, domain.NewPaused(req.Paused))
		if err != nil {
			return errValidation()
		}

		projUUID := projectID.UUID()
		event := policy.UpdateEvent().WithToken(tokenFrom(ctx)).OnWorkflow(workflowID.UUID(), &projUUID)
		if err := c.Gate.Authorize(ctx.Request().Context(), event); err != nil {
			return classify(err)
		}

		if err := c.Workflows.Create(ctx.Request().Context(), workflow); err != nil {
			return classify(err)
		}
		c.Broker.PublishProject(projUUID)

		return ctx.JSON(http.StatusCreated, echo.Map{
			"id":          workflow.ID().String(),
			"name":        workflow.Name().String(),
			"project_id":  workflow.ProjectID().String(),
			"description": workflow.Description().String(),
			"paused":      workflow.Paused().Bool(),
		})
	}
}

// getWorkflow authorizes after the lookup: the project id is resolved from
// the found row and Gate.Authorize fills it in if this event is built
// without one, exactly as it would for a bare workflow id from a caller
// that doesn't already know the owning project.
func getWorkflow(c *Controller) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := domain.NewWorkflowID(ctx.Param("id"))
		if err != nil {
			return errBadRequest()
		}
		row, err := c.Workflows.GetByID(ctx.Request().Context(), id)
		if err != nil {
			return classify(err)
		}
		if row == nil {
			return ctx.NoContent(http.StatusNotFound)
		}

		event := policy.GetEvent().WithToken(tokenFrom(ctx)).OnWorkflow(row.ID, &row.ProjectID)
		if err := c.Gate.Authorize(ctx.Request().Context(), event); err != nil {
			return classify(err)
		}
		return ctx.JSON(http.StatusOK, echo.Map{
			"id":          row.ID,
			"name":        row.Name,
			"project_id":  row.ProjectID,
			"description": row.Description,
			"paused":      row.Paused,
			"created_at":  row.CreatedAt,
			"updated_at":  row.UpdatedAt,
		})
	}
}

func deleteWorkflow(c *Controller) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := domain.NewWorkflowID(ctx.Param("id"))
		if err != nil {
			return errBadRequest()
		}

		event := policy.DeleteEvent().WithToken(tokenFrom(ctx)).OnWorkflow(id.UUID(), nil)
		if err := c.Gate.Authorize(ctx.Request().Context(), event); err != nil {
			return classify(err)
		}

		projectID, lookupErr := c.Workflows.GetProjectID(ctx.Request().Context(), id)
		affected, err := c.Workflows.Delete(ctx.Request().Context(), id)
		if err != nil {
			return errInternal()
		}
		if affected == 1 {
			if lookupErr == nil && projectID != nil {
				c.Broker.PublishProject(*projectID)
			}
			return ctx.NoContent(http.StatusNoContent)
		}
		return ctx.NoContent(http.StatusNotFound)
	}
}
