package bundler

import (
	"path"
	"regexp"
	"strings"

	"uigen-backend/internal/project"
)

// probeExtensions is the resolution order for extensionless relative imports.
var probeExtensions = []string{".tsx", ".ts", ".jsx", ".js"}

func isBare(spec string) bool {
	return !strings.HasPrefix(spec, "./") &&
		!strings.HasPrefix(spec, "../") &&
		!strings.HasPrefix(spec, "/")
}

func isAllowed(spec string) bool {
	for _, allowed := range AllowedModules {
		if spec == allowed {
			return true
		}
	}
	return false
}

// resolveRelative resolves spec against the importer's directory and probes
// the file set: exact path, then known extensions, then an index file under
// the path as a directory. It reports the canonical module id.
func resolveRelative(idx map[string]project.File, importer, spec string) (string, bool) {
	base := path.Dir(project.CleanPath(importer))
	if importer == "" || base == "." {
		base = ""
	}

	var joined string
	if strings.HasPrefix(spec, "/") {
		joined = project.CleanPath(spec)
	} else {
		joined = project.CleanPath(path.Join(base, spec))
	}

	if _, ok := idx[joined]; ok {
		return joined, true
	}
	for _, ext := range probeExtensions {
		if _, ok := idx[joined+ext]; ok {
			return joined + ext, true
		}
	}
	for _, ext := range probeExtensions {
		candidate := joined + "/index" + ext
		if _, ok := idx[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

var requirePattern = regexp.MustCompile(`require\("((?:[^"\\]|\\.)*)"\)`)

// scanRequires extracts the distinct module specifiers from transformed
// CommonJS code, in first-occurrence order.
func scanRequires(code string) []string {
	var specs []string
	seen := make(map[string]struct{})
	for _, match := range requirePattern.FindAllStringSubmatch(code, -1) {
		spec := match[1]
		if _, dup := seen[spec]; dup {
			continue
		}
		seen[spec] = struct{}{}
		specs = append(specs, spec)
	}
	return specs
}

// rewriteRequire repoints every require of spec at the canonical module id.
func rewriteRequire(code, spec, id string) string {
	if spec == id {
		return code
	}
	return strings.ReplaceAll(code, `require("`+spec+`")`, `require("`+id+`")`)
}
