package report

import (
	"strings"
	"testing"

	"specview/internal/config"
	"specview/internal/filter"
	"specview/internal/graph"
	"specview/internal/loader"
	"specview/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sendDoc = `<api-specification><functions>
<function name="MPI_Send" return-type="int">
	<function-arguments>
		<function-argument name="buf" type="void*" intent="in" order="0"/>
		<function-argument name="count" type="int" intent="in" order="1"/>
		<function-argument name="comm" type="MPI_Comm" intent="in" order="2"/>
	</function-arguments>
	<operations>
		<operation order="0" name="getCommSize" group="CommTrack" id="1">
			<operation-arguments>
				<operation-argument op-arg-order="0"><call-arg-name>comm</call-arg-name></operation-argument>
			</operation-arguments>
		</operation>
	</operations>
	<analyses>
		<analysis name="Checks:countCheck" order="0" group="Checks">
			<analysis-arguments>
				<analysis-argument type="int" analysis-arg-order="0"><call-arg-name>count</call-arg-name></analysis-argument>
			</analysis-arguments>
		</analysis>
		<analysis name="Checks:commCheck" order="1" group="Checks">
			<analysis-arguments>
				<analysis-argument type="int" analysis-arg-order="0"><op-name group="CommTrack" id="1">getCommSize</op-name></analysis-argument>
			</analysis-arguments>
		</analysis>
	</analyses>
</function>
<function name="MPI_Finalize" return-type="int" is-finalizer="yes"/>
</functions></api-specification>`

func loadDoc(t *testing.T) *loader.Result {
	t.Helper()
	res := loader.LoadString(sendDoc)
	require.NoError(t, res.ParseError)
	require.Len(t, res.Calls, 2)
	return res
}

func TestRenderer_Calls(t *testing.T) {
	res := loadDoc(t)

	t.Run("Plain", func(t *testing.T) {
		out := NewRenderer(nil, Options{}).Calls(res, nil)
		assert.Contains(t, out, "| call | arg 0 | arg 1 | arg 2 |\n| --- | --- | --- | --- |\n")
		assert.Contains(t, out, "| MPI_Send | buf | count | comm |\n")
		assert.Contains(t, out, "| MPI_Finalize |  |  |  |\n")
	})

	t.Run("Decorated and filtered", func(t *testing.T) {
		f := filter.New(filter.Params{CallName: "send", ArgType: "int", Highlight: true})
		opts := OptionsFromView(config.View{ShowArgType: true, ShowArgOrder: true})
		out := NewRenderer(f, opts).Calls(res, nil)
		assert.Contains(t, out, "| **MPI_Send** | 0: void* buf | _1: int count_ | 2: MPI_Comm comm |\n")
		assert.NotContains(t, out, "MPI_Finalize")
	})

	t.Run("With notes", func(t *testing.T) {
		out := NewRenderer(nil, Options{}).Calls(res, map[string]string{"MPI_Send": "a -> X\nb"})
		assert.Contains(t, out, "| call | arg 0 | arg 1 | arg 2 | todo |\n")
		assert.Contains(t, out, "| MPI_Send | buf | count | comm | a -> X<br>b |\n")
		assert.Contains(t, out, "| MPI_Finalize |  |  |  |  |\n")
	})
}

func TestRenderer_AnalysesAndOperations(t *testing.T) {
	res := loadDoc(t)

	t.Run("Analyses", func(t *testing.T) {
		out := NewRenderer(nil, Options{ShowAnalysisOrder: true}).Analyses(res)
		assert.Contains(t, out, "| MPI_Send | countCheck(0) | commCheck(1) |\n")
		assert.Contains(t, out, "| MPI_Finalize |  |  |\n")
	})

	t.Run("Analysis filter", func(t *testing.T) {
		f := filter.New(filter.Params{MappedArg: "^comm$"})
		out := NewRenderer(f, Options{ShowAnalysisGroup: true}).Analyses(res)
		assert.Contains(t, out, "| MPI_Send | Checks:commCheck |  |\n")
	})

	t.Run("Operations", func(t *testing.T) {
		out := NewRenderer(nil, Options{}).Operations(res)
		assert.Contains(t, out, "| call | operation 0 |\n")
		assert.Contains(t, out, "| MPI_Send | getCommSize |\n")
	})
}

func TestRenderer_Mapped(t *testing.T) {
	res := loadDoc(t)
	r := NewRenderer(nil, Options{})

	t.Run("Analyses", func(t *testing.T) {
		out := r.MappedAnalyses(res, map[string]string{"MPI_Send": "check count -> Checks"})
		assert.Contains(t, out, "### MPI_Send\n\n|  | buf | count | comm |\n| --- | --- | --- | --- |\n")
		assert.Contains(t, out, "| countCheck |  | **count** |  |\n")
		assert.Contains(t, out, "| commCheck |  |  | **comm** |\n")
		assert.Contains(t, out, "```\ncheck count -> Checks\n```\n")
		assert.NotContains(t, out, "MPI_Finalize")
	})

	t.Run("Operations", func(t *testing.T) {
		out := r.MappedOperations(res)
		assert.Contains(t, out, "| getCommSize#CommTrack:1 |  |  | **comm** |\n")
	})
}

func TestTodos(t *testing.T) {
	notes := []*storage.Note{
		{CallName: "MPI_Recv", Body: "check source -> RankChecks\nplain line\n", SpecDigest: 7},
		{CallName: "MPI_Send", Body: "count -> BufferChecks\ndest->RankChecks\nx -> a -> b", SpecDigest: 9},
	}

	assert.Equal(t, []string{"BufferChecks", "RankChecks", "a -> b"}, Checks(notes))
	assert.Equal(t, map[string]string{
		"MPI_Recv": notes[0].Body,
		"MPI_Send": notes[1].Body,
	}, NoteBodies(notes))

	out := Todos(notes, 9)
	assert.Contains(t, out, "### MPI_Recv (stale)\n")
	assert.Contains(t, out, "### MPI_Send\n")
	assert.True(t, strings.HasSuffix(out, "## List of todos\n\n- BufferChecks\n- RankChecks\n- a -> b\n"))
}

func TestDump(t *testing.T) {
	out, err := Dump(loadDoc(t))
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "name: MPI_Send")
	assert.Contains(t, text, "is_finalizer: \"yes\"")
	assert.Contains(t, text, "max_argument_count: 3")
}

func TestMermaid(t *testing.T) {
	g := graph.Build(loadDoc(t).Calls)

	out := Mermaid(g, "MPI_Send")
	assert.True(t, strings.HasPrefix(out, "```mermaid\ngraph LR\n"))
	assert.Contains(t, out, "subgraph mpi_send_0[\"MPI_Send\"]")
	assert.Contains(t, out, "-->|inspects|")
	assert.Contains(t, out, "-->|uses_operation|")
	assert.Contains(t, out, "-->|consumes|")
	assert.NotContains(t, out, "MPI_Finalize")
}

func TestMermaid_DuplicateCallNames(t *testing.T) {
	res := loader.LoadString(`<api-specification><functions>
<function name="MPI_X"><function-arguments><function-argument name="count"/></function-arguments></function>
<function name="MPI_X"><function-arguments><function-argument name="count"/></function-arguments></function>
</functions></api-specification>`)
	out := Mermaid(graph.Build(res.Calls))

	assert.Contains(t, out, "subgraph mpi_x_0[\"MPI_X\"]")
	assert.Contains(t, out, "subgraph mpi_x_1[\"MPI_X\"]")
	assert.Equal(t, 2, strings.Count(out, "    end\n"))
}
