package operations

import (
	"context"
	"time"
)

// BuildOptions tunes how Build treats the source table
type BuildOptions struct {
	// AllowMissing lets a plan run when a step's input column is absent from
	// the source; the column then reads as blank for every row.
	AllowMissing bool
}

// Plan is an ordered list of steps in which every step runs after the
// producers of its inputs
type Plan struct {
	steps   []Step
	missing []string
}

// StepRun records one step's pass over the rows
type StepRun struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Rows      int           `json:"rows"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration_ns"`
}

// Build orders the registry's steps against the given source columns.
//
// Ties are broken by registration order, so a registry that is already in a
// valid order yields exactly that order. Build fails when two steps produce
// the same column, when steps form a cycle, or when an input is neither
// produced by another step nor present in the source (unless AllowMissing).
func Build(reg *Registry, sourceColumns []string, opts BuildOptions) (*Plan, error) {
	steps := reg.List()

	source := make(map[string]bool, len(sourceColumns))
	for _, c := range sourceColumns {
		source[c] = true
	}

	errs := &ErrorList{}
	producer := make(map[string]string)
	for _, step := range steps {
		for _, column := range step.Outputs() {
			if first, ok := producer[column]; ok {
				errs.Add(NewConflictError(column, first, step.ID()))
				continue
			}
			producer[column] = step.ID()
		}
	}
	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(steps))
	for i, step := range steps {
		index[step.ID()] = i
	}

	dependents := make(map[string][]string, len(steps))
	inDegree := make(map[string]int, len(steps))
	var missing []string
	seenMissing := make(map[string]bool)

	for _, step := range steps {
		own := make(map[string]bool)
		for _, column := range step.Outputs() {
			own[column] = true
		}

		deps := make(map[string]bool)
		for _, column := range step.Inputs() {
			if !own[column] {
				if p, ok := producer[column]; ok {
					if !deps[p] {
						deps[p] = true
						dependents[p] = append(dependents[p], step.ID())
						inDegree[step.ID()]++
					}
					continue
				}
			}
			if source[column] {
				continue
			}
			if opts.AllowMissing {
				if !seenMissing[column] {
					seenMissing[column] = true
					missing = append(missing, column)
				}
				continue
			}
			errs.Add(NewDependencyError(step.ID(), column))
		}
	}
	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}

	// Kahn's algorithm, always taking the earliest-registered ready step
	ready := make([]bool, len(steps))
	for i, step := range steps {
		ready[i] = inDegree[step.ID()] == 0
	}
	done := make([]bool, len(steps))
	ordered := make([]Step, 0, len(steps))

	for len(ordered) < len(steps) {
		next := -1
		for i := range steps {
			if ready[i] && !done[i] {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}

		done[next] = true
		ordered = append(ordered, steps[next])
		for _, dependent := range dependents[steps[next].ID()] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready[index[dependent]] = true
			}
		}
	}

	if len(ordered) != len(steps) {
		var stuck []string
		for i, step := range steps {
			if !done[i] {
				stuck = append(stuck, step.ID())
			}
		}
		return nil, NewCycleError(stuck)
	}

	return &Plan{steps: ordered, missing: missing}, nil
}

// Steps returns the steps in execution order
func (p *Plan) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// StepIDs returns the step IDs in execution order
func (p *Plan) StepIDs() []string {
	ids := make([]string, len(p.steps))
	for i, step := range p.steps {
		ids[i] = step.ID()
	}
	return ids
}

// Missing returns the source columns the plan tolerated as absent
func (p *Plan) Missing() []string {
	return append([]string(nil), p.missing...)
}

// Execute applies each step to every row, one step at a time, in plan order.
// tracer may be nil. Cancellation is checked between steps.
func (p *Plan) Execute(ctx context.Context, rows []*Row, tracer *StepTracer) ([]StepRun, error) {
	runs := make([]StepRun, 0, len(p.steps))

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return runs, NewCancellationError(step.ID(), err)
		}

		stepCtx, span := tracer.StartStep(ctx, step, len(rows))
		start := time.Now()
		for _, row := range rows {
			step.Apply(row)
		}
		elapsed := time.Since(start)
		tracer.EndStep(stepCtx, span, step, elapsed)

		runs = append(runs, StepRun{
			ID:        step.ID(),
			Name:      step.Name(),
			Rows:      len(rows),
			StartTime: start,
			Duration:  elapsed,
		})
	}

	return runs, nil
}
