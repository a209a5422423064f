package models

import (
	"encoding/json"
	"sort"
)

// ViewState is the per-view, session-scoped UI state. It is owned by the
// interaction handler and lives independently of the graph data: a new
// transformation replaces the graph but a reopened view restores its state.
type ViewState struct {
	AnalysisType    AnalysisType        `json:"analysisType"`
	ZoomLevel       float64             `json:"zoomLevel"`
	SelectedNodes   []string            `json:"selectedNodes"`
	SearchQuery     string              `json:"searchQuery"`
	ExpandedModules map[string]struct{} `json:"-"`
}

// NewViewState creates the initial state for a freshly opened view.
func NewViewState(analysisType AnalysisType) *ViewState {
	return &ViewState{
		AnalysisType:    analysisType,
		ZoomLevel:       1.0,
		SelectedNodes:   make([]string, 0),
		ExpandedModules: make(map[string]struct{}),
	}
}

// ToggleExpanded flips module membership in the expanded set and reports
// whether the module is expanded afterwards.
func (s *ViewState) ToggleExpanded(moduleID string) bool {
	if _, ok := s.ExpandedModules[moduleID]; ok {
		delete(s.ExpandedModules, moduleID)
		return false
	}
	s.ExpandedModules[moduleID] = struct{}{}
	return true
}

// IsExpanded reports module membership in the expanded set.
func (s *ViewState) IsExpanded(moduleID string) bool {
	_, ok := s.ExpandedModules[moduleID]
	return ok
}

// ClearSelection empties the selected node list.
func (s *ViewState) ClearSelection() {
	s.SelectedNodes = s.SelectedNodes[:0]
}

// Select replaces the selection with the single given node.
func (s *ViewState) Select(nodeID string) {
	s.SelectedNodes = append(s.SelectedNodes[:0], nodeID)
}

// viewStateWire is the serialized shape used for host-side persistence
// across webview visibility toggles.
type viewStateWire struct {
	AnalysisType    AnalysisType `json:"analysisType"`
	ZoomLevel       float64      `json:"zoomLevel"`
	SelectedNodes   []string     `json:"selectedNodes"`
	SearchQuery     string       `json:"searchQuery"`
	ExpandedModules []string     `json:"expandedModules"`
}

// MarshalJSON serializes the expanded set as a sorted list so the wire form
// is stable across marshals.
func (s *ViewState) MarshalJSON() ([]byte, error) {
	expanded := make([]string, 0, len(s.ExpandedModules))
	for id := range s.ExpandedModules {
		expanded = append(expanded, id)
	}
	sort.Strings(expanded)
	return json.Marshal(viewStateWire{
		AnalysisType:    s.AnalysisType,
		ZoomLevel:       s.ZoomLevel,
		SelectedNodes:   s.SelectedNodes,
		SearchQuery:     s.SearchQuery,
		ExpandedModules: expanded,
	})
}

// UnmarshalJSON restores a persisted state.
func (s *ViewState) UnmarshalJSON(data []byte) error {
	var wire viewStateWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	s.AnalysisType = wire.AnalysisType
	s.ZoomLevel = wire.ZoomLevel
	s.SelectedNodes = wire.SelectedNodes
	if s.SelectedNodes == nil {
		s.SelectedNodes = make([]string, 0)
	}
	s.SearchQuery = wire.SearchQuery
	s.ExpandedModules = make(map[string]struct{}, len(wire.ExpandedModules))
	for _, id := range wire.ExpandedModules {
		s.ExpandedModules[id] = struct{}{}
	}
	return nil
}
