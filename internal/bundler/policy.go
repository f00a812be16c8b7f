package bundler

import (
	"fmt"
	"strings"
)

// PolicyText restates the import resolution policy in plain language. It is
// sent to the generation provider up front and again, verbatim, in repair
// instructions, so it must stay in lockstep with what Bundle enforces.
func PolicyText() string {
	return fmt.Sprintf(
		"Import rules: only %s may be imported as bare module names. "+
			"Every other import must be a relative path (starting with ./ or ../) "+
			"that resolves to a file included in the project. "+
			"Do not import any other npm package, CSS file, or remote URL.",
		strings.Join(AllowedModules, " and "))
}
