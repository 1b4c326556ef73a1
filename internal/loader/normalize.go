package loader

import "strings"

// tagReplacements maps hyphenated names to the names the model reads. The
// replacements are plain substring rewrites over the raw text, applied before
// parsing, so plural group tags such as "function-arguments" are rewritten too.
var tagReplacements = []string{
	"function-argument", "function_argument",
	"operation-argument", "operation_argument",
	"call-arg-name", "call_arg_name",
	"analysis-argument", "analysis_argument",
	"op-name", "op_name",
	"analysis-arg-order", "analysis_arg_order",
}

var normalizer = strings.NewReplacer(tagReplacements...)

// Normalize rewrites the ambiguous names of a raw specification document.
func Normalize(raw string) string {
	return normalizer.Replace(raw)
}
