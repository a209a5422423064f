// Package interaction dispatches user interaction events against a view's
// state. Handlers never mutate the graph beyond the highlight/expansion
// flags, which are view-state projections onto the model.
package interaction

// EventType is the closed set of interaction events a renderer can emit.
type EventType string

const (
	NodeClick       EventType = "node-click"
	NodeHover       EventType = "node-hover"
	EdgeClick       EventType = "edge-click"
	EdgeHover       EventType = "edge-hover"
	BackgroundClick EventType = "background-click"
	Zoom            EventType = "zoom"
	Pan             EventType = "pan"
)

// Event is one interaction emitted by the rendering side.
type Event struct {
	Type   EventType `json:"type"`
	NodeID string    `json:"nodeId,omitempty"`
	EdgeID string    `json:"edgeId,omitempty"`
	// Zoom carries the absolute level computed by the renderer; the state
	// machine stores it without clamping.
	Zoom float64 `json:"zoom,omitempty"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
}
