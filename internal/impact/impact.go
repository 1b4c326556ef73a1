package impact

import (
	"specview/internal/spec"
)

// Report lists what touches one call argument.
type Report struct {
	Call     string
	Argument string
	// DirectlyAffected analyses name the argument in a call_arg_name reference.
	DirectlyAffected []*spec.Analysis
	// IndirectlyAffected analyses reach the argument through an operation.
	IndirectlyAffected []*spec.Analysis
	Operations         []*spec.Operation
}

// Empty reports whether nothing maps to the argument.
func (r *Report) Empty() bool {
	return len(r.DirectlyAffected) == 0 && len(r.IndirectlyAffected) == 0 && len(r.Operations) == 0
}

// Analyzer answers reverse mapping queries for one call.
type Analyzer struct {
	call *spec.Call
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(call *spec.Call) *Analyzer {
	return &Analyzer{call: call}
}

// AnalyzeImpact collects the analyses and operations mapped to argument,
// each once and in document order. An analysis reading the argument both
// directly and through an operation is reported as direct.
func (a *Analyzer) AnalyzeImpact(argument string) *Report {
	report := &Report{
		Call:               a.call.Name,
		Argument:           argument,
		DirectlyAffected:   []*spec.Analysis{},
		IndirectlyAffected: []*spec.Analysis{},
		Operations:         a.call.MappedOperations(argument),
	}
	if report.Operations == nil {
		report.Operations = []*spec.Operation{}
	}

	for _, an := range a.call.Analyses {
		direct, indirect := classify(an, argument)
		switch {
		case direct:
			report.DirectlyAffected = append(report.DirectlyAffected, an)
		case indirect:
			report.IndirectlyAffected = append(report.IndirectlyAffected, an)
		}
	}
	return report
}

func classify(an *spec.Analysis, argument string) (direct, indirect bool) {
	for _, arg := range an.Arguments {
		if arg.MapsDirectly(argument) {
			direct = true
		}
		if arg.MapsThroughOperation(argument) {
			indirect = true
		}
	}
	return direct, indirect
}
