package bundler

import (
	"fmt"
	"path"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// transform turns one source file into browser-executable CommonJS. The
// transpiler is a collaborator: source text in, executable JS out, or a
// structured error. Imports survive as require calls for the linker to
// resolve.
func transform(id, source string) (string, error) {
	result := api.Transform(source, api.TransformOptions{
		Loader:     loaderFor(id),
		Format:     api.FormatCommonJS,
		Target:     api.ES2017,
		Sourcefile: id,
		LogLevel:   api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		return "", transformError(id, result.Errors[0])
	}
	return string(result.Code), nil
}

func loaderFor(id string) api.Loader {
	switch strings.ToLower(path.Ext(id)) {
	case ".tsx":
		return api.LoaderTSX
	case ".ts":
		return api.LoaderTS
	case ".jsx":
		return api.LoaderJSX
	default:
		return api.LoaderJS
	}
}

func transformError(id string, msg api.Message) *BuildError {
	text := msg.Text
	if msg.Location != nil {
		text = fmt.Sprintf("%s:%d:%d: %s", id, msg.Location.Line, msg.Location.Column, msg.Text)
	} else {
		text = fmt.Sprintf("%s: %s", id, msg.Text)
	}
	return &BuildError{File: id, Message: text}
}
