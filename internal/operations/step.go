package operations

import (
	"grantcli/pkg/contracts/domain"
)

// Row is one intake row moving through the plan. Raw holds the source cells
// keyed by normalized header; Record accumulates the cleaned values.
type Row struct {
	Index  int
	Raw    map[string]string
	Record *domain.ApplicationRecord
}

// NewRow wraps a raw row for plan execution
func NewRow(index int, raw map[string]string) *Row {
	if raw == nil {
		raw = make(map[string]string)
	}
	return &Row{Index: index, Raw: raw, Record: &domain.ApplicationRecord{}}
}

// Cell returns the raw value of a source column. Absent columns read as blank.
func (r *Row) Cell(column string) string {
	return r.Raw[column]
}

// Step is one transform in the cleaning plan. It declares the columns it
// reads and the columns it writes; Build uses those to order steps.
type Step interface {
	// ID returns the unique identifier for this Step
	ID() string

	// Name returns the human-readable name for this Step
	Name() string

	// Inputs returns the columns this Step reads. An input that is also one
	// of the Step's outputs refers to the source column of that name.
	Inputs() []string

	// Outputs returns the columns this Step writes
	Outputs() []string

	// Apply transforms a single row in place. It must not fail: unusable
	// cells become NA or the column's missing category.
	Apply(row *Row)
}

// BaseStep provides the identity and column declarations shared by steps
type BaseStep struct {
	id      string
	name    string
	inputs  []string
	outputs []string
}

// NewBaseStep creates a new base Step
func NewBaseStep(id, name string, inputs, outputs []string) BaseStep {
	return BaseStep{
		id:      id,
		name:    name,
		inputs:  inputs,
		outputs: outputs,
	}
}

// ID returns the Step ID
func (b *BaseStep) ID() string {
	return b.id
}

// Name returns the Step name
func (b *BaseStep) Name() string {
	return b.name
}

// Inputs returns a copy of the input columns
func (b *BaseStep) Inputs() []string {
	return append([]string(nil), b.inputs...)
}

// Outputs returns a copy of the output columns
func (b *BaseStep) Outputs() []string {
	return append([]string(nil), b.outputs...)
}

// FuncStep is a Step whose transform is a plain function
type FuncStep struct {
	BaseStep
	apply func(row *Row)
}

// NewFuncStep creates a Step running apply on every row
func NewFuncStep(id, name string, inputs, outputs []string, apply func(row *Row)) *FuncStep {
	return &FuncStep{
		BaseStep: NewBaseStep(id, name, inputs, outputs),
		apply:    apply,
	}
}

// Apply runs the step's function
func (s *FuncStep) Apply(row *Row) {
	if s.apply != nil {
		s.apply(row)
	}
}

// NewColumnStep creates the common single-column Step: it reads the source
// column of the same name and writes the cleaned value into the record via set.
func NewColumnStep(column string, set func(rec *domain.ApplicationRecord, raw string)) *FuncStep {
	return NewFuncStep(column, column, []string{column}, []string{column}, func(row *Row) {
		set(row.Record, row.Cell(column))
	})
}
