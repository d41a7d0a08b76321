// pkg/shared/ports.go

package shared

// PortNetdata is the dashboard port the agent listens on. Upstream's
// default is left alone: operators and docs all expect 19999.
const PortNetdata = 19999
