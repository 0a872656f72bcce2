package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pqnet/gestit/gesture"
	"github.com/pqnet/gestit/gesture/emit"
	"github.com/pqnet/gestit/gesture/gesturetest"
	"github.com/pqnet/gestit/gesture/history"
)

// demoTrace is a small canned event sequence exercising a sequence gesture
// over features A then B, with one non-matching event mixed in to show the
// engine's feature-mismatch handling.
var demoTrace = []struct {
	feature gesturetest.Feature
	payload int
}{
	{gesturetest.A, 1},
	{gesturetest.C, 0},
	{gesturetest.B, 1},
	{gesturetest.A, 1},
	{gesturetest.B, 1},
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Compile a built-in sequence gesture and feed it a canned trace",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd)
		},
	}
	return cmd
}

func runDemo(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	sensor := gesturetest.NewMockSensor()
	expr := gesture.Seq(gesture.Ground(gesturetest.A, nil), gesture.Ground(gesturetest.B, nil))

	metrics := gesture.NewMetrics(nil)
	logEmitter := emit.NewLogEmitter(out, false)
	store := history.NewMemoryStore()
	defer store.Close()

	networkID := "demo"
	fired := 0
	expr.Gesture().Subscribe(func() {
		fired++
		if _, err := store.Record(context.Background(), networkID); err != nil {
			fmt.Fprintf(out, "history record failed: %v\n", err)
		}
		fmt.Fprintf(out, "gesture fired (#%d)\n", fired)
	})

	if _, err := expr.Compile(sensor, gesture.WithMetrics(metrics), gesture.WithEmitter(logEmitter)); err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	for _, step := range demoTrace {
		sensor.Publish(step.feature, step.payload)
	}

	n, err := store.Count(context.Background(), networkID)
	if err != nil {
		return fmt.Errorf("history count: %w", err)
	}
	fmt.Fprintf(out, "total firings recorded: %d\n", n)
	return nil
}
