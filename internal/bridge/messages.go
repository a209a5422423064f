// Package bridge carries the host-view protocol: a websocket per open
// panel, JSON envelopes in both directions, and one session per
// connection owning its own graph and view state.
package bridge

import "encoding/json"

// Command names sent host to view.
const (
	CmdUpdateGraph      = "updateGraph"
	CmdUpdateState      = "updateState"
	CmdHighlightNodes   = "highlightNodes"
	CmdClearHighlights  = "clearHighlights"
	CmdShowTabLoading   = "showTabLoading"
	CmdShowTabError     = "showTabError"
	CmdUpdateTabContent = "updateTabContent"
)

// Command names sent view to host.
const (
	CmdGraphInteraction  = "graphInteraction"
	CmdRequestAnalysis   = "requestAnalysis"
	CmdRetryAnalysis     = "retryAnalysis"
	CmdRetryTabLoad      = "retryTabLoad"
	CmdRequestTabContent = "requestTabContent"
)

// Envelope is the wire frame for every message in both directions.
type Envelope struct {
	Command string          `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope marshals the payload into an envelope. Marshal errors surface
// to the caller; nothing partial goes on the wire.
func NewEnvelope(command string, payload any) (Envelope, error) {
	if payload == nil {
		return Envelope{Command: command}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Command: command, Payload: data}, nil
}

// RequestAnalysisPayload asks the host to run an analysis and push a fresh
// graph.
type RequestAnalysisPayload struct {
	ProjectPath  string `json:"projectPath"`
	AnalysisType string `json:"analysisType"`
	ActiveFile   string `json:"activeFile,omitempty"`
}

// TabPayload addresses one side tab of the view.
type TabPayload struct {
	Tab     string `json:"tab"`
	Message string `json:"message,omitempty"`
	Content any    `json:"content,omitempty"`
}

// HighlightPayload names the nodes to highlight.
type HighlightPayload struct {
	NodeIDs []string `json:"nodeIds"`
}
