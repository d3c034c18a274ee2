package main

import (
	"context"
	"fmt"
	"time"

	pokedexhttp "github.com/fwojciec/pokedex/http"
)

// shutdownTimeout bounds graceful shutdown on interrupt.
const shutdownTimeout = 5 * time.Second

// Run executes the serve command. It blocks until the context is canceled
// (interrupt) and then shuts the server down gracefully.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := pokedexhttp.NewServer(deps.Catalog, deps.Details, deps.Logger)

	errCh := make(chan error, 1)
	go func() {
		deps.Logger.Info("serving catalog", "addr", c.Addr)
		errCh <- server.ListenAndServe(c.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-deps.Ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
