package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kotosiro/controller/domain"
	"github.com/kotosiro/controller/policy"
)

func registerProjectRoutes(e *echo.Echo, c *Controller) {
	e.GET("/api/project", getOrListProjects(c))
	e.POST("/api/project", createProject(c))
	e.PUT("/api/project", createProject(c))
	e.GET("/api/project/:id", getProjectSummary(c))
	e.DELETE("/api/project/:id", deleteProject(c))
	e.GET("/api/project/:id/workflow", listProjectWorkflows(c))
}

type createProjectRequest struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Config      *json.RawMessage `json:"config"`
}

// createProject handles both POST and PUT: upsert-by-id, generating a fresh
// id when the caller didn't supply one. Authorization happens before the
// write, against the payload's own id - the caller is asserting the id it
// wants, so that's what the sidecar must approve.
func createProject(c *Controller) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var req createProjectRequest
		if err := ctx.Bind(&req); err != nil {
			return errValidation()
		}
		id := req.ID
		if id == "" {
			id = uuid.NewString()
		}
		projectID, err := domain.NewProjectID(id)
		if err != nil {
			return errValidation()
		}
		name, err := domain.NewProjectName(req.Name)
		if err != nil {
			return errValidation()
		}
		description, err := domain.NewDescription(req.Description)
		if err != nil {
			return errValidation()
		}
		cfg := domain.AbsentConfig()
		if req.Config != nil {
			cfg, err = domain.NewConfig(*req.Config)
			if err != nil {
				return errValidation()
			}
		}
		project, err := domain.NewProject(projectID, name, description, cfg)
		if err != nil {
			return errValidation()
		}

		event := policy.UpdateEvent().WithToken(tokenFrom(ctx)).OnProject(projectID.UUID())
		if err := c.Gate.Authorize(ctx.Request().Context(), event); err != nil {
			return classify(err)
		}

		if err := c.Projects.Create(ctx.Request().Context(), project); err != nil {
			return classify(err)
		}
		c.Broker.PublishProject(projectID.UUID())

		return ctx.JSON(http.StatusCreated, echo.Map{
			"id":          project.ID().String(),
			"name":        project.Name().String(),
			"description": project.Description().String(),
		})
	}
}

// getOrListProjects handles GET /api/project: a ?name= query resolves one
// project by name, otherwise projects are listed in name order, up to the
// repository's default limit of 100.
func getOrListProjects(c *Controller) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		rawName := ctx.QueryParam("name")
		if rawName == "" {
			event := policy.ListEvent().WithToken(tokenFrom(ctx)).OfKind("project")
			if err := c.Gate.Authorize(ctx.Request().Context(), event); err != nil {
				return classify(err)
			}
			rows, err := c.Projects.List(ctx.Request().Context(), 0)
			if err != nil {
				return classify(err)
			}
			body := make([]echo.Map, 0, len(rows))
			for _, r := range rows {
				body = append(body, echo.Map{
					"id":          r.ID,
					"name":        r.Name,
					"description": r.Description,
					"config":      r.Config,
					"created_at":  r.CreatedAt,
					"updated_at":  r.UpdatedAt,
				})
			}
			return ctx.JSON(http.StatusOK, body)
		}

		name, err := domain.NewProjectName(rawName)
		if err != nil {
			return errValidation()
		}
		row, err := c.Projects.GetByName(ctx.Request().Context(), name)
		if err != nil {
			return classify(err)
		}
		if row == nil {
			return ctx.NoContent(http.StatusNotFound)
		}

		event := policy.GetEvent().WithToken(tokenFrom(ctx)).OnProject(row.ID)
		if err := c.Gate.Authorize(ctx.Request().Context(), event); err != nil {
			return classify(err)
		}
		return ctx.JSON(http.StatusOK, echo.Map{
			"id":          row.ID,
			"name":        row.Name,
			"description": row.Description,
			"config":      row.Config,
			"created_at":  row.CreatedAt,
			"updated_at":  row.UpdatedAt,
		})
	}
}

// getProjectSummary handles GET /api/project/:id: authorization happens
// after the lookup, against the row actually found, never the raw path id.
func getProjectSummary(c *Controller) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := domain.NewProjectID(ctx.Param("id"))
		if err != nil {
			return errBadRequest()
		}
		row, err := c.Projects.GetSummaryByID(ctx.Request().Context(), id)
		if err != nil {
			return classify(err)
		}
		if row == nil {
			return ctx.NoContent(http.StatusNotFound)
		}

		event := policy.GetEvent().WithToken(tokenFrom(ctx)).OnProject(row.ID)
		if err := c.Gate.Authorize(ctx.Request().Context(), event); err != nil {
			return classify(err)
		}
		return ctx.JSON(http.StatusOK, echo.Map{
			"id":                  row.ID,
			"name":                row.Name,
			"description":         row.Description,
			"workflows":           row.Workflows,
			"running_jobs":        row.RunningJobs,
			"waiting_jobs":        row.WaitingJobs,
			"fails_last_hour":     row.FailsLastHour,
			"successes_last_hour": row.SuccessesLastHour,
			"errors_last_hour":    row.ErrorsLastHour,
		})
	}
}

// deleteProject authorizes directly against the path id, before checking
// whether anything was actually there to delete - a not-found result is
// reported as 404, never folded into the conflict/internal classification.
func deleteProject(c *Controller) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := domain.NewProjectID(ctx.Param("id"))
		if err != nil {
			return errBadRequest()
		}

		event := policy.DeleteEvent().WithToken(tokenFrom(ctx)).OnProject(id.UUID())
		if err := c.Gate.Authorize(ctx.Request().Context(), event); err != nil {
			return classify(err)
		}

		affected, err := c.Projects.Delete(ctx.Request().Context(), id)
		if err != nil {
			return errInternal()
		}
		if affected == 1 {
			c.Broker.PublishProject(id.UUID())
			return ctx.NoContent(http.StatusNoContent)
		}
		return ctx.NoContent(http.StatusNotFound)
	}
}

func listProjectWorkflows(c *Controller) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := domain.NewProjectID(ctx.Param("id"))
		if err != nil {
			return errBadRequest()
		}

		var name, after *domain.Name
		if raw := ctx.QueryParam("name"); raw != "" {
			if n, err := domain.NewWorkflowName(raw); err == nil {
				name = &n
			}
		}
		if raw := ctx.QueryParam("after"); raw != "" {
			if n, err := domain.NewWorkflowName(raw); err == nil {
				after = &n
			}
		}
		var limit int64
		if raw := ctx.QueryParam("limit"); raw != "" {
			if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
				limit = v
			}
		}

		event := policy.ListEvent().WithToken(tokenFrom(ctx)).OnProject(id.UUID())
		if err := c.Gate.Authorize(ctx.Request().Context(), event); err != nil {
			return classify(err)
		}

		rows, err := c.Projects.ListWorkflowsByID(ctx.Request().Context(), id, name, after, limit)
		if err != nil {
			return classify(err)
		}
		body := make([]echo.Map, 0, len(rows))
		for _, r := range rows {
			body = append(body, echo.Map{
				"id":          r.ID,
				"name":        r.Name,
				"description": r.Description,
				"paused":      r.Paused,
				"success":     r.Success,
				"running":     r.Running,
				"failure":     r.Failure,
				"waiting":     r.Waiting,
				"error":       r.Error,
			})
		}
		return ctx.JSON(http.StatusOK, body)
	}
}
