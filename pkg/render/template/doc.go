// Package template defines the renderer-agnostic template contract used by
// field plugins and the wizard step handler. The gotemplate subpackage
// provides the pongo2-backed implementation.
package template
