// Package orchestrator wires the load → validate → normalize → render/export
// pipeline behind a single entry point. Every stage can be swapped through
// options; the defaults use the built-in loader, validator and preview
// renderer.
package orchestrator
