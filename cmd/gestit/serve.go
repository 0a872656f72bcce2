package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pqnet/gestit/gesture"
	"github.com/pqnet/gestit/gesture/emit"
	"github.com/pqnet/gestit/gesture/history"
	"github.com/pqnet/gestit/gesture/transport"
)

// buildExpr builds one of the four combinator shapes over the feature
// tags "A" and "B", selectable by name for the serve subcommand.
func buildExpr(name string) (gesture.Expression, error) {
	a := gesture.Ground("A", nil)
	b := gesture.Ground("B", nil)

	switch name {
	case "seq":
		return gesture.Seq(a, b), nil
	case "par":
		return gesture.Par(a, b), nil
	case "choice":
		return gesture.Choice(a, b), nil
	case "iter":
		return gesture.Iter(a), nil
	default:
		return nil, fmt.Errorf("unknown expression %q: want one of seq, par, choice, iter", name)
	}
}

// openHistoryStore parses a --history flag value of the form
// "sqlite:path.db" or "mysql:dsn" into a concrete history.Store. An empty
// spec means no persistence: firings are only logged, not recorded.
func openHistoryStore(spec string) (history.Store, error) {
	if spec == "" {
		return nil, nil
	}
	scheme, rest, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("--history must be of the form scheme:target, got %q", spec)
	}
	switch scheme {
	case "sqlite":
		return history.NewSQLiteStore(rest)
	case "mysql":
		return history.NewMySQLStore(rest)
	default:
		return nil, fmt.Errorf("unknown history backend %q: want sqlite or mysql", scheme)
	}
}

func newServeCmd() *cobra.Command {
	var (
		listenURL   string
		exprName    string
		historySpec string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Connect to a websocket sensor feed and recognize a gesture",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, listenURL, exprName, historySpec)
		},
	}
	cmd.Flags().StringVar(&listenURL, "url", "ws://localhost:8080/sensor", "websocket URL to dial for sensor events")
	cmd.Flags().StringVar(&exprName, "expr", "seq", "expression to compile: seq, par, choice, or iter")
	cmd.Flags().StringVar(&historySpec, "history", "", "optional firing log: sqlite:path.db or mysql:dsn")
	return cmd
}

func runServe(cmd *cobra.Command, listenURL, exprName, historySpec string) error {
	out := cmd.OutOrStdout()

	expr, err := buildExpr(exprName)
	if err != nil {
		return err
	}

	store, err := openHistoryStore(historySpec)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	if store != nil {
		defer store.Close()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	sensor, err := transport.NewWebsocketSensor(ctx, listenURL, nil)
	if err != nil {
		return fmt.Errorf("connect sensor: %w", err)
	}
	defer sensor.Close()

	networkID := "serve-" + exprName
	fired := 0
	expr.Gesture().Subscribe(func() {
		fired++
		fmt.Fprintf(out, "gesture %q fired (#%d)\n", exprName, fired)
		if store != nil {
			if _, err := store.Record(context.Background(), networkID); err != nil {
				fmt.Fprintf(out, "history record failed: %v\n", err)
			}
		}
	})

	logEmitter := emit.NewLogEmitter(out, false)
	if _, err := expr.Compile(sensor, gesture.WithEmitter(logEmitter)); err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	fmt.Fprintf(out, "listening on %s, expression %q, press Ctrl+C to stop\n", listenURL, exprName)
	<-cmd.Context().Done()
	return nil
}
