// Package httpapi is Kotosiro's HTTP request core: one Echo route per
// project/workflow/job/run operation, each following the same pipeline
// grounded on the original interactors - extract bearer, decode and
// validate, authorize against the policy gate, call the service layer,
// classify any storage error, respond, and fire a config-update
// notification on mutating success.
package httpapi

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/kotosiro/controller/broker"
	"github.com/kotosiro/controller/domain"
	"github.com/kotosiro/controller/internal/config"
	"github.com/kotosiro/controller/policy"
	"github.com/kotosiro/controller/service"
)

const tokenContextKey = "kotosiro.token"

// Controller bundles everything an HTTP handler needs: the pool-backed
// services, the policy gate, the broker client for fire-and-forget config
// updates, and the instance's own identity. Built once in the cli package's
// controller command and shared by every handler, mirroring the teacher's
// api.Handlers struct.
type Controller struct {
	Pool       *pgxpool.Pool
	Broker     *broker.Client
	Config     *config.Config
	InstanceID uuid.UUID

	Gate      *policy.Gate
	Projects  *service.ProjectService
	Workflows *service.WorkflowService
	Jobs      *service.JobService
	Runs      *service.RunService

	Log *logrus.Entry
}

// NewController wires the service layer and policy gate over pool, keeps
// brokerClient for config-update notifications, and is ready to hand to
// NewServer.
func NewController(pool *pgxpool.Pool, brokerClient *broker.Client, cfg config.Config, instanceID uuid.UUID, log *logrus.Entry) *Controller {
	workflows := service.NewWorkflowService(pool)
	gate := policy.NewGate(cfg.OPAAddr, cfg.NoAuth, workflowLookup{workflows}, log)
	return &Controller{
		Pool:       pool,
		Broker:     brokerClient,
		Config:     &cfg,
		InstanceID: instanceID,
		Gate:       gate,
		Projects:   service.NewProjectService(pool),
		Workflows:  workflows,
		Jobs:       service.NewJobService(pool),
		Runs:       service.NewRunService(pool),
		Log:        log,
	}
}

// workflowLookup adapts WorkflowService's domain-typed GetProjectID to the
// bare-uuid signature policy.WorkflowProjectLookup needs, keeping policy
// free of a dependency on domain or service.
type workflowLookup struct{ workflows *service.WorkflowService }

func (l workflowLookup) GetProjectID(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	return l.workflows.GetProjectID(ctx, domain.WorkflowIDFromUUID(id))
}

// NewServer builds the Echo instance: middleware stack grounded on the
// teacher's NewEchoServer, bearer extraction that never rejects a request
// for lacking a token, the custom error handler, and every route.
func NewServer(c *Controller) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${time_rfc3339}] ${status} ${method} ${uri} (${latency_human})\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(bearerTokenMiddleware)

	e.HTTPErrorHandler = NewHTTPErrorHandler(c.Log)

	registerProjectRoutes(e, c)
	registerWorkflowRoutes(e, c)
	registerJobRoutes(e, c)
	registerRunRoutes(e, c)

	return e
}

// bearerTokenMiddleware extracts "Authorization: Bearer <token>" into the
// request context as a policy.Token. A missing or malformed header yields
// policy.NoToken(): the sidecar decides whether that token is allowed to
// act, the transport layer never rejects a request for lacking one.
func bearerTokenMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		const prefix = "Bearer "
		if strings.HasPrefix(header, prefix) {
			c.Set(tokenContextKey, policy.BearerToken(strings.TrimPrefix(header, prefix)))
		} else {
			c.Set(tokenContextKey, policy.NoToken())
		}
		return next(c)
	}
}

func tokenFrom(c echo.Context) policy.Token {
	if t, ok := c.Get(tokenContextKey).(policy.Token); ok {
		return t
	}
	return policy.NoToken()
}
