package health

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/sl"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Live always answers ok while the process is serving.
func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, Response{Status: "ok"})
	}
}

// Ready pings every dependency and answers 503 if any of them is down.
func Ready(log *slog.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		var (
			mu     sync.Mutex
			g      errgroup.Group
			checks = make(map[string]string, len(deps))
			down   bool
		)

		for name, dep := range deps {
			name, dep := name, dep
			g.Go(func() error {
				err := dep.Ping(ctx)

				mu.Lock()
				defer mu.Unlock()

				if err != nil {
					log.Warn("Readiness check failed", slog.String("dependency", name), sl.Err(err))
					checks[name] = "down"
					down = true
					return nil
				}
				checks[name] = "up"
				return nil
			})
		}
		_ = g.Wait()

		if down {
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, Response{Status: "unavailable", Checks: checks})
			return
		}

		render.JSON(w, r, Response{Status: "ok", Checks: checks})
	}
}
