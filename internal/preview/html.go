package preview

import (
	"fmt"
	"strings"
)

const (
	reactScriptURL    = "https://unpkg.com/react@18/umd/react.production.min.js"
	reactDOMScriptURL = "https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"
)

// BuildHTML embeds a bundled script into a minimal HTML document meant for a
// sandboxed iframe srcdoc. It has no failure mode: any script string is
// embedded, and runtime errors stay inside the iframe's own console. By the
// time this runs the bundler has already certified syntax and resolution.
func BuildHTML(script string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
  html, body { margin: 0; padding: 0; }
  #%s { min-height: 100vh; }
</style>
</head>
<body>
<div id="%s"></div>
<script crossorigin src="%s"></script>
<script crossorigin src="%s"></script>
<script>
%s
</script>
</body>
</html>
`, MountElementID, MountElementID, reactScriptURL, reactDOMScriptURL, escapeScript(script))
}

// escapeScript keeps a literal "</script" inside the bundle (it can only
// occur inside JS string literals) from terminating the inline script tag.
func escapeScript(script string) string {
	return strings.ReplaceAll(script, "</script", "<\\/script")
}
