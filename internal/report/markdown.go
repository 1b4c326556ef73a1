package report

import (
	"fmt"
	"strings"

	"specview/internal/config"
	"specview/internal/filter"
	"specview/internal/loader"
	"specview/internal/spec"
)

// Options selects how names are decorated in the views.
type Options struct {
	Labels            spec.LabelOptions
	ShowAnalysisGroup bool
	ShowAnalysisOrder bool
}

// OptionsFromView maps the view section of the configuration to render options.
func OptionsFromView(v config.View) Options {
	return Options{
		Labels: spec.LabelOptions{
			ShowType:   v.ShowArgType,
			ShowIntent: v.ShowArgIntent,
			ShowOrder:  v.ShowArgOrder,
		},
		ShowAnalysisGroup: v.ShowAnalysisGroup,
		ShowAnalysisOrder: v.ShowAnalysisOrder,
	}
}

// Renderer produces the markdown views of a loaded document.
type Renderer struct {
	filter *filter.Filter
	opts   Options
}

func NewRenderer(f *filter.Filter, opts Options) *Renderer {
	if f == nil {
		f = filter.New(filter.Params{})
	}
	return &Renderer{filter: f, opts: opts}
}

// Calls lists every allowed call with its argument labels. When notes is not
// nil a trailing column carries the note of each call.
func (r *Renderer) Calls(res *loader.Result, notes map[string]string) string {
	var sb strings.Builder
	sb.WriteString("## MPI calls and their arguments\n\n")

	header := []string{"call"}
	for i := 0; i < res.Stats.MaxArgumentCount; i++ {
		header = append(header, fmt.Sprintf("arg %d", i))
	}
	if notes != nil {
		header = append(header, "todo")
	}
	writeHeader(&sb, header)

	for _, call := range r.filter.Calls(res.Calls) {
		row := []string{r.callName(call)}
		for _, arg := range call.Arguments {
			row = append(row, r.argumentLabel(arg))
		}
		row = pad(row, 1+res.Stats.MaxArgumentCount)
		if notes != nil {
			row = append(row, notes[call.Name])
		}
		writeRow(&sb, row)
	}
	return sb.String()
}

// Analyses lists every allowed call with the analyses the filter admits.
func (r *Renderer) Analyses(res *loader.Result) string {
	var sb strings.Builder
	sb.WriteString("## MPI calls and their analyses\n\n")

	header := []string{"call"}
	for i := 0; i < res.Stats.MaxAnalysisCount; i++ {
		header = append(header, fmt.Sprintf("analysis %d", i))
	}
	writeHeader(&sb, header)

	for _, call := range r.filter.Calls(res.Calls) {
		row := []string{r.callName(call)}
		for _, an := range r.filter.Analyses(call.Analyses) {
			row = append(row, an.DisplayName(r.opts.ShowAnalysisGroup, r.opts.ShowAnalysisOrder))
		}
		writeRow(&sb, pad(row, 1+res.Stats.MaxAnalysisCount))
	}
	return sb.String()
}

// Operations lists every allowed call with its operation names.
func (r *Renderer) Operations(res *loader.Result) string {
	var sb strings.Builder
	sb.WriteString("## MPI calls and their operations\n\n")

	header := []string{"call"}
	for i := 0; i < res.Stats.MaxOperationCount; i++ {
		header = append(header, fmt.Sprintf("operation %d", i))
	}
	writeHeader(&sb, header)

	for _, call := range r.filter.Calls(res.Calls) {
		row := []string{r.callName(call)}
		for _, op := range call.Operations {
			row = append(row, op.Name)
		}
		writeRow(&sb, pad(row, 1+res.Stats.MaxOperationCount))
	}
	return sb.String()
}

// MappedAnalyses renders one table per call that has analyses: the argument
// header row, then one row per allowed analysis with its mapped arguments in
// bold. When notes is not nil the note of the call follows its table.
func (r *Renderer) MappedAnalyses(res *loader.Result, notes map[string]string) string {
	var sb strings.Builder
	sb.WriteString("## Analyses mapped to call arguments\n\n")

	for _, call := range r.filter.Calls(res.Calls) {
		if len(call.Analyses) == 0 {
			continue
		}
		r.writeMappingHeader(&sb, call)
		for _, an := range r.filter.Analyses(call.Analyses) {
			row := []string{an.DisplayName(r.opts.ShowAnalysisGroup, r.opts.ShowAnalysisOrder)}
			for _, arg := range call.Arguments {
				row = append(row, r.mappedCell(arg, an.IsMappedToArgument(arg.Name)))
			}
			writeRow(&sb, row)
		}
		if notes != nil {
			if note := strings.TrimSpace(notes[call.Name]); note != "" {
				sb.WriteString("\n```\n" + note + "\n```\n")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// MappedOperations renders one table per call that has operations.
func (r *Renderer) MappedOperations(res *loader.Result) string {
	var sb strings.Builder
	sb.WriteString("## Operations mapped to call arguments\n\n")

	for _, call := range r.filter.Calls(res.Calls) {
		if len(call.Operations) == 0 {
			continue
		}
		r.writeMappingHeader(&sb, call)
		for _, op := range call.Operations {
			row := []string{op.Key().String()}
			for _, arg := range call.Arguments {
				row = append(row, r.mappedCell(arg, op.IsMappedToArgument(arg.Name)))
			}
			writeRow(&sb, row)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r *Renderer) writeMappingHeader(sb *strings.Builder, call *spec.Call) {
	sb.WriteString("### " + r.callName(call) + "\n\n")
	header := []string{""}
	for _, arg := range call.Arguments {
		header = append(header, r.argumentLabel(arg))
	}
	writeHeader(sb, header)
}

func (r *Renderer) mappedCell(arg spec.Argument, mapped bool) string {
	if !mapped {
		return ""
	}
	return "**" + arg.Label(r.opts.Labels) + "**"
}

func (r *Renderer) callName(call *spec.Call) string {
	if r.filter.HighlightCall(call) {
		return "**" + call.Name + "**"
	}
	return call.Name
}

func (r *Renderer) argumentLabel(arg spec.Argument) string {
	label := arg.Label(r.opts.Labels)
	if r.filter.HighlightArgument(arg) {
		return "_" + label + "_"
	}
	return label
}

func writeHeader(sb *strings.Builder, cells []string) {
	writeRow(sb, cells)
	sb.WriteString("|")
	for range cells {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
}

func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("|")
	for _, c := range cells {
		sb.WriteString(" " + escapeCell(c) + " |")
	}
	sb.WriteString("\n")
}

func pad(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}

func escapeCell(v string) string {
	v = strings.ReplaceAll(v, "|", "\\|")
	return strings.ReplaceAll(v, "\n", "<br>")
}
