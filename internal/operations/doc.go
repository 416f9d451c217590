// Package operations builds and runs the ordered transform plan that turns
// raw intake rows into cleaned application records.
//
// Core components:
//
// Step: one transform. A step declares the columns it reads (Inputs) and the
// columns it writes (Outputs) and applies itself to a Row in place. Most steps
// are column steps built with NewColumnStep: they read the source column of
// the same name and store the cleaned value on the row's record.
//
// Registry: holds steps in registration order.
//
// Plan: the result of Build. Build orders the registered steps so every step
// runs after the producers of its inputs, breaking ties by registration order.
// It rejects duplicate producers, cycles, and inputs that are neither
// produced nor present in the source table.
//
// StepTracer: wraps the run and each step in an OpenTelemetry span and records
// step and run metrics.
//
// RunManifest: a JSON record of a run (row count, NA counts per column, step
// timings and a blake2b digest of the written bytes).
//
// Example usage:
//
//	reg := operations.NewRegistry()
//	reg.MustRegister(
//		operations.NewColumnStep("gender", func(rec *domain.ApplicationRecord, raw string) {
//			rec.Gender = normalize.Gender(raw)
//		}),
//	)
//
//	plan, err := operations.Build(reg, header, operations.BuildOptions{})
//	if err != nil {
//		return err
//	}
//	runs, err := plan.Execute(ctx, rows, tracer)
package operations
