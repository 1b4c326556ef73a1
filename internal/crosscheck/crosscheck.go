package crosscheck

import (
	"sort"
	"strconv"

	"specview/internal/extractor"
	"specview/internal/spec"
)

// MismatchKind classifies a difference between a call and its prototype.
type MismatchKind string

const (
	ArgumentCount MismatchKind = "argument_count"
	ArgumentName  MismatchKind = "argument_name"
)

// Mismatch describes one difference between a call and its header prototype.
type Mismatch struct {
	Call      string       `yaml:"call"`
	Kind      MismatchKind `yaml:"kind"`
	Position  int          `yaml:"position"` // 0-based, argument_name only
	Expected  string       `yaml:"expected"`
	Found     string       `yaml:"found"`
	Prototype string       `yaml:"prototype"` // file:line
}

// Report is the outcome of comparing loaded calls with header prototypes.
type Report struct {
	MissingPrototypes []string   `yaml:"missing_prototypes"`
	UnknownPrototypes []string   `yaml:"unknown_prototypes"`
	Mismatches        []Mismatch `yaml:"mismatches"`
	Matched           int        `yaml:"matched"`
}

// Clean reports whether calls and prototypes agree completely.
func (r *Report) Clean() bool {
	return len(r.MissingPrototypes) == 0 && len(r.UnknownPrototypes) == 0 && len(r.Mismatches) == 0
}

// Compare checks every call against the prototype of the same name.
// The first prototype seen for a name wins; calls keep document order.
func Compare(calls []*spec.Call, protos []*extractor.Prototype) *Report {
	report := &Report{}

	byName := make(map[string]*extractor.Prototype, len(protos))
	for _, proto := range protos {
		if _, ok := byName[proto.Name]; !ok {
			byName[proto.Name] = proto
		}
	}

	known := make(map[string]bool, len(calls))
	for _, call := range calls {
		known[call.Name] = true
		proto, ok := byName[call.Name]
		if !ok {
			report.MissingPrototypes = append(report.MissingPrototypes, call.Name)
			continue
		}
		before := len(report.Mismatches)
		report.Mismatches = append(report.Mismatches, compareCall(call, proto)...)
		if len(report.Mismatches) == before {
			report.Matched++
		}
	}

	for name := range byName {
		if !known[name] {
			report.UnknownPrototypes = append(report.UnknownPrototypes, name)
		}
	}
	sort.Strings(report.UnknownPrototypes)

	return report
}

func compareCall(call *spec.Call, proto *extractor.Prototype) []Mismatch {
	var out []Mismatch
	location := proto.Filepath + ":" + strconv.Itoa(proto.Line)

	if len(call.Arguments) != len(proto.Params) {
		out = append(out, Mismatch{
			Call:      call.Name,
			Kind:      ArgumentCount,
			Expected:  strconv.Itoa(len(call.Arguments)),
			Found:     strconv.Itoa(len(proto.Params)),
			Prototype: location,
		})
	}

	n := len(call.Arguments)
	if len(proto.Params) < n {
		n = len(proto.Params)
	}
	for i := 0; i < n; i++ {
		want := call.Arguments[i].Name
		got := proto.Params[i].Name
		if want == got {
			continue
		}
		out = append(out, Mismatch{
			Call:      call.Name,
			Kind:      ArgumentName,
			Position:  i,
			Expected:  want,
			Found:     got,
			Prototype: location,
		})
	}
	return out
}
