// Package cli provides Kotosiro's command-line entry points: the
// "controller" command that serves the HTTP request core, and a "runner"
// placeholder for the worker process that consumes config updates and
// actually executes jobs, which lives outside the scope of this repository.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kotosiro/controller/broker"
	"github.com/kotosiro/controller/httpapi"
	"github.com/kotosiro/controller/internal/config"
	"github.com/kotosiro/controller/internal/logging"
	"github.com/kotosiro/controller/internal/version"
	"github.com/kotosiro/controller/storage"
)

var cfgFile string

// RootCmd is the "kotosiro" command. It carries only the shared --config
// flag; the real work happens in its subcommands.
var RootCmd = &cobra.Command{
	Use:   "kotosiro",
	Short: "Kotosiro workflow orchestration control plane",
	Long: `Kotosiro is a workflow orchestration control plane: projects group
workflows, workflows group jobs, and jobs are triggered as runs. This binary
serves the controller's HTTP API over Postgres, authorizing every request
against an OPA sidecar and broadcasting config changes over AMQP so runner
instances can pick them up.`,
}

var controllerCmd = &cobra.Command{
	Use:   "controller",
	Short: "serve the HTTP control plane",
	Run:   runController,
}

// runnerCmd is a placeholder: the process that actually schedules and
// executes jobs against the definitions this controller persists is an
// external collaborator, out of scope for this repository.
var runnerCmd = &cobra.Command{
	Use:   "runner",
	Short: "run a job-execution worker (not implemented by this repository)",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(os.Stderr, "kotosiro runner is not implemented by this repository; see SPEC_FULL.md's Non-goals")
		os.Exit(1)
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.kotosiro.yaml)")
	RootCmd.AddCommand(controllerCmd)
	RootCmd.AddCommand(runnerCmd)
}

func initConfig() {
	config.Init(viper.GetViper(), cfgFile)
}

func runController(cmd *cobra.Command, args []string) {
	cfg := config.Load(viper.GetViper())
	cfg.ServiceName = "kotosiro-controller"
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = version.String()
	}

	log := logging.ServiceEntry(logging.New(cfg.UseJSONLog, cfg.LogFilter), cfg.ServiceName, cfg.ServiceVersion)

	ctx := context.Background()
	pg, err := storage.NewPostgres(ctx, cfg.DBURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pg.Close()

	conn, err := broker.RealDialer{}.Dial(cfg.MQAddr)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to message broker")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Fatal("failed to open message broker channel")
	}

	mqClient, err := broker.NewClient(ch, log)
	if err != nil {
		log.WithError(err).Fatal("failed to set up config update exchange")
	}

	controller := httpapi.NewController(pg.Pool(), mqClient, cfg, uuid.New(), log)
	server := httpapi.NewServer(controller)

	go func() {
		log.Infof("kotosiro controller listening on %s", cfg.ControllerBind)
		if err := server.Start(cfg.ControllerBind); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("controller server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down controller")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("controller shutdown failed")
	}
}
