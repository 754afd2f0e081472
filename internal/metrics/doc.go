// Package metrics exposes bootstrap and module metrics in the Prometheus
// format. Each Recorder owns its registry so several bootstrap runs in one
// process (tests, the phases command) do not collide.
package metrics
