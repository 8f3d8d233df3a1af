// Package pipeline is a minimal host for the global TOC hooks.
//
// Run walks the configured source tree, passes every Markdown and notebook
// page through a PageHook and writes the result under the output directory.
// It stands in for a full renderer: pages are copied, not rendered.
package pipeline
