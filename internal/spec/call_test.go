package spec

import (
	"testing"

	"specview/internal/xmldoc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reduceCall = `
<function name="MPI_Reduce" return-type="int" wrapp-everywhere="yes">
	<function_arguments>
		<function_argument name="sendbuf" type="void*" intent="in" order="0"/>
		<function_argument name="recvbuf" type="void*" intent="out" order="1"/>
		<function_argument name="count" type="int" intent="in" order="2"/>
		<function_argument name="comm" type="MPI_Comm" intent="in" order="3"/>
	</function_arguments>
	<operations>
		<operation order="0" name="reduce" group="G1" id="1">
			<operation_arguments>
				<operation_argument op-arg-order="0"><call_arg_name>count</call_arg_name></operation_argument>
				<operation_argument op-arg-order="1"><call_arg_name>comm</call_arg_name></operation_argument>
			</operation_arguments>
		</operation>
		<operation order="1" name="reduce" group="G1" id="2">
			<operation_arguments>
				<operation_argument op-arg-order="0"><call_arg_name>recvbuf</call_arg_name></operation_argument>
			</operation_arguments>
		</operation>
	</operations>
	<analyses>
		<analysis name="BufferChecks:notNull" order="0" group="BufferChecks">
			<analysis_arguments>
				<analysis_argument type="void*" analysis_arg_order="0"><call_arg_name>sendbuf</call_arg_name></analysis_argument>
			</analysis_arguments>
		</analysis>
		<analysis name="CommChecks:sizeCheck" order="1" group="CommChecks">
			<analysis_arguments>
				<analysis_argument type="int" analysis_arg_order="0"><op_name group="G1" id="1">reduce</op_name></analysis_argument>
			</analysis_arguments>
		</analysis>
		<analysis name="CommChecks:dangling" order="2">
			<analysis_arguments>
				<analysis_argument type="int" analysis_arg_order="0"><op_name group="G2" id="1">reduce</op_name></analysis_argument>
			</analysis_arguments>
		</analysis>
	</analyses>
</function>`

func parseCall(t *testing.T, text string, stats *Stats) *Call {
	t.Helper()
	el, err := xmldoc.ParseString(text)
	require.NoError(t, err)
	return NewCall(el, stats)
}

func TestNewCall(t *testing.T) {
	stats := &Stats{}
	call := parseCall(t, reduceCall, stats)

	t.Run("Scalar attributes", func(t *testing.T) {
		assert.Equal(t, "MPI_Reduce", call.Name)
		assert.Equal(t, "int", call.ReturnType)
		assert.Equal(t, FlagYes, call.WrappEverywhere)
		assert.True(t, call.WrappEverywhere.Bool())
		assert.Equal(t, FlagNo, call.IsFinalizer)
		assert.False(t, call.IsFinalizer.Bool())
	})

	t.Run("Declaration order", func(t *testing.T) {
		var names []string
		for _, arg := range call.Arguments {
			names = append(names, arg.Name)
		}
		assert.Equal(t, []string{"sendbuf", "recvbuf", "count", "comm"}, names)

		require.Len(t, call.Operations, 2)
		assert.Equal(t, "1", call.Operations[0].ID)
		assert.Equal(t, "2", call.Operations[1].ID)

		require.Len(t, call.Analyses, 3)
		assert.Equal(t, "BufferChecks:notNull", call.Analyses[0].Name)
		assert.Equal(t, "CommChecks:sizeCheck", call.Analyses[1].Name)
		assert.Equal(t, "CommChecks:dangling", call.Analyses[2].Name)
	})

	t.Run("Stats", func(t *testing.T) {
		assert.Equal(t, Stats{MaxArgumentCount: 4, MaxOperationCount: 2, MaxAnalysisCount: 3}, *stats)
	})

	t.Run("Operation reference resolves to the sibling instance", func(t *testing.T) {
		arg := call.Analyses[1].Arguments[0]
		assert.Equal(t, RefOperation, arg.Ref)
		assert.True(t, arg.Resolved())
		assert.Same(t, call.Operations[0], arg.Operation)
	})

	t.Run("Unresolved operation reference", func(t *testing.T) {
		arg := call.Analyses[2].Arguments[0]
		assert.Equal(t, RefOperation, arg.Ref)
		assert.False(t, arg.Resolved())
		assert.Nil(t, arg.Operation)
		assert.Equal(t, &OperationKey{Name: "reduce", Group: "G2", ID: "1"}, arg.OperationRef)
	})
}

func TestNewCall_Defaults(t *testing.T) {
	stats := &Stats{}
	call := parseCall(t, `<function name="MPI_Init"/>`, stats)

	assert.Equal(t, "MPI_Init", call.Name)
	assert.Equal(t, "", call.ReturnType)
	assert.Equal(t, FlagNo, call.WrappEverywhere)
	assert.Equal(t, FlagNo, call.IsFinalizer)
	assert.Empty(t, call.Arguments)
	assert.Empty(t, call.Operations)
	assert.Empty(t, call.Analyses)
	assert.Equal(t, Stats{}, *stats)

	t.Run("Nil stats", func(t *testing.T) {
		assert.NotPanics(t, func() {
			parseCall(t, reduceCall, nil)
		})
	})
}

func TestCall_Lookups(t *testing.T) {
	call := parseCall(t, reduceCall, nil)

	arg, ok := call.Argument("count")
	require.True(t, ok)
	assert.Equal(t, "int", arg.Type)

	_, ok = call.Argument("missing")
	assert.False(t, ok)
	assert.True(t, call.HasArgument("comm"))

	assert.Same(t, call.Operations[1], call.Operation(OperationKey{Name: "reduce", Group: "G1", ID: "2"}))
	assert.Nil(t, call.Operation(OperationKey{Name: "reduce", Group: "G1"}))

	mapped := call.MappedAnalyses("count")
	require.Len(t, mapped, 1)
	assert.Equal(t, "CommChecks:sizeCheck", mapped[0].Name)

	ops := call.MappedOperations("recvbuf")
	require.Len(t, ops, 1)
	assert.Equal(t, "2", ops[0].ID)
}

func TestFlag(t *testing.T) {
	assert.Equal(t, FlagNo, NewFlag(""))
	assert.Equal(t, Flag("YES"), NewFlag("YES"))
	assert.True(t, NewFlag("YES").Bool())
	assert.True(t, NewFlag("true").Bool())
	assert.True(t, NewFlag("1").Bool())
	assert.False(t, NewFlag("no").Bool())
	assert.False(t, NewFlag("maybe").Bool())
}
