package filter

import (
	"regexp"
	"strings"
	"sync"

	"specview/internal/spec"
)

// IntentAll accepts every argument in the intent filter.
const IntentAll = "all"

// Params holds the user supplied patterns. An empty field is an unset filter.
// Patterns are case-insensitive regular expressions searched anywhere in the
// subject: "|" separates alternatives, "." matches one character and "*"
// repeats the previous item.
type Params struct {
	CallName     string `yaml:"call_name,omitempty"`
	ArgName      string `yaml:"arg_name,omitempty"`
	ArgType      string `yaml:"arg_type,omitempty"`
	Intent       string `yaml:"intent,omitempty"`
	AnalysisName string `yaml:"analysis_name,omitempty"`
	MappedArg    string `yaml:"mapped_arg,omitempty"`
	Highlight    bool   `yaml:"highlight,omitempty"`
}

// Filter decides which calls and analyses a view shows.
type Filter struct {
	params Params
	mux    sync.Mutex
	cache  map[string]*regexp.Regexp
}

// New creates a filter; blank patterns are treated as unset.
func New(params Params) *Filter {
	params.CallName = strings.TrimSpace(params.CallName)
	params.ArgName = strings.TrimSpace(params.ArgName)
	params.ArgType = strings.TrimSpace(params.ArgType)
	params.Intent = strings.TrimSpace(params.Intent)
	params.AnalysisName = strings.TrimSpace(params.AnalysisName)
	params.MappedArg = strings.TrimSpace(params.MappedArg)
	return &Filter{params: params, cache: map[string]*regexp.Regexp{}}
}

// CallFilterSet reports whether any call-level filter is set.
func (f *Filter) CallFilterSet() bool {
	p := f.params
	return p.CallName != "" || p.ArgName != "" || p.ArgType != "" || p.Intent != ""
}

// AnalysisFilterSet reports whether any analysis-level filter is set.
func (f *Filter) AnalysisFilterSet() bool {
	return f.params.AnalysisName != "" || f.params.MappedArg != ""
}

// AllowCall reports whether every set call-level filter holds for call.
func (f *Filter) AllowCall(call *spec.Call) bool {
	if !f.CallFilterSet() {
		return true
	}
	p := f.params
	if p.CallName != "" && !f.match(p.CallName, strings.TrimSpace(call.Name)) {
		return false
	}

	var nameOK, typeOK, intentOK bool
	for _, arg := range call.Arguments {
		if p.ArgName != "" && !nameOK && f.match(p.ArgName, strings.TrimSpace(arg.Name)) {
			nameOK = true
		}
		intentMatches := f.intentMatches(arg)
		if p.ArgType != "" && !typeOK && intentMatches && f.match(p.ArgType, arg.PlainType()) {
			typeOK = true
		}
		if intentMatches {
			intentOK = true
		}
	}
	return (p.ArgName == "" || nameOK) && (p.ArgType == "" || typeOK) && (p.Intent == "" || intentOK)
}

func (f *Filter) intentMatches(arg spec.Argument) bool {
	intent := f.params.Intent
	if intent == "" || intent == IntentAll {
		return true
	}
	return f.match(intent, arg.Intent)
}

// AllowAnalysis reports whether an analysis passes the analysis-level filters:
// its name matches, or one of its inputs reads a matching call argument,
// directly or through a resolved operation.
func (f *Filter) AllowAnalysis(analysis *spec.Analysis) bool {
	if !f.AnalysisFilterSet() {
		return true
	}
	p := f.params
	if p.AnalysisName != "" && f.match(p.AnalysisName, strings.TrimSpace(analysis.Name)) {
		return true
	}
	if p.MappedArg == "" {
		return false
	}
	for _, arg := range analysis.Arguments {
		if arg.Ref.Has(spec.RefArgument) && f.match(p.MappedArg, arg.ArgumentMapping) {
			return true
		}
		if arg.Ref.Has(spec.RefOperation) {
			for _, name := range arg.Operation.CallArgNames() {
				if f.match(p.MappedArg, name) {
					return true
				}
			}
		}
	}
	return false
}

// Calls returns the calls AllowCall accepts, in order.
func (f *Filter) Calls(calls []*spec.Call) []*spec.Call {
	var result []*spec.Call
	for _, call := range calls {
		if f.AllowCall(call) {
			result = append(result, call)
		}
	}
	return result
}

// Analyses returns the analyses AllowAnalysis accepts, in order.
func (f *Filter) Analyses(analyses []*spec.Analysis) []*spec.Analysis {
	var result []*spec.Analysis
	for _, an := range analyses {
		if f.AllowAnalysis(an) {
			result = append(result, an)
		}
	}
	return result
}

// HighlightCall reports whether the call name should be marked.
func (f *Filter) HighlightCall(call *spec.Call) bool {
	p := f.params
	return p.Highlight && p.CallName != "" && f.match(p.CallName, strings.TrimSpace(call.Name))
}

// HighlightArgument reports whether the argument should be marked. The type
// pattern is matched against the declared type, pointer markers included.
func (f *Filter) HighlightArgument(arg spec.Argument) bool {
	p := f.params
	if !p.Highlight {
		return false
	}
	return (p.ArgType != "" && f.match(p.ArgType, strings.TrimSpace(arg.Type))) ||
		(p.ArgName != "" && f.match(p.ArgName, strings.TrimSpace(arg.Name)))
}

// match searches subject for pattern, ignoring case. Invalid patterns never match.
func (f *Filter) match(pattern, subject string) bool {
	re := f.compile(pattern)
	if re == nil {
		return false
	}
	return re.MatchString(subject)
}

func (f *Filter) compile(pattern string) *regexp.Regexp {
	f.mux.Lock()
	defer f.mux.Unlock()
	if re, ok := f.cache[pattern]; ok {
		return re
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		re = nil
	}
	f.cache[pattern] = re
	return re
}
