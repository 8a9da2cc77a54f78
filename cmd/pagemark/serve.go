package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	pmhttp "github.com/inkfold/pagemark/http"
	"github.com/inkfold/pagemark/ratelimit"
)

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	PipelineFlags

	Addr       string        `default:":8080" env:"PAGEMARK_ADDR" help:"HTTP listen address"`
	RateWindow time.Duration `default:"60s" env:"PAGEMARK_RATE_WINDOW" help:"Per-client rate limit window"`
	RateLimit  int           `default:"20" env:"PAGEMARK_RATE_LIMIT" help:"Admissions per client per window"`
}

// Run executes the serve command. It blocks until interrupted.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := pmhttp.NewServer()
	srv.Addr = c.Addr
	srv.Service = c.service(deps.Logger)
	srv.Limiter = ratelimit.NewWindow(
		ratelimit.WithWindow(c.RateWindow),
		ratelimit.WithLimit(c.RateLimit),
	)
	srv.Logger = deps.Logger

	if err := srv.Open(); err != nil {
		return fmt.Errorf("failed to listen on %q: %w", c.Addr, err)
	}
	fmt.Fprintf(deps.Stdout, "pagemark listening on %s\n", srv.URL())

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	return srv.Close()
}
