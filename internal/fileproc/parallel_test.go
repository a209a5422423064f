package fileproc

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPayloadsPreservesOrder(t *testing.T) {
	paths := []string{"a.json", "b.json", "c.json", "d.json"}

	results, errs := MapPayloads(paths, func(path string) (string, error) {
		return strings.TrimSuffix(path, ".json"), nil
	}, nil)

	require.False(t, errs.HasErrors())
	assert.Equal(t, []string{"a", "b", "c", "d"}, results)
}

func TestMapPayloadsCollectsErrors(t *testing.T) {
	paths := []string{"ok.json", "bad.json", "ok2.json"}
	boom := errors.New("unreadable")

	results, errs := MapPayloads(paths, func(path string) (int, error) {
		if path == "bad.json" {
			return 0, boom
		}
		return len(path), nil
	}, nil)

	require.True(t, errs.HasErrors())
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, "bad.json", errs.Errors[0].Path)
	assert.ErrorIs(t, errs.Errors[0].Err, boom)

	// Failed slot stays zero; successful slots keep their values.
	assert.Equal(t, 0, results[1])
	assert.Equal(t, len("ok.json"), results[0])
}

func TestMapPayloadsProgress(t *testing.T) {
	paths := []string{"a", "b", "c"}
	var ticks atomic.Int64

	_, errs := MapPayloads(paths, func(path string) (struct{}, error) {
		if path == "b" {
			return struct{}{}, errors.New("fail")
		}
		return struct{}{}, nil
	}, func() { ticks.Add(1) })

	// Progress fires for failures too.
	assert.Equal(t, int64(3), ticks.Load())
	assert.True(t, errs.HasErrors())
}

func TestMapPayloadsEmpty(t *testing.T) {
	results, errs := MapPayloads(nil, func(path string) (int, error) { return 0, nil }, nil)
	assert.Empty(t, results)
	assert.False(t, errs.HasErrors())
}

func TestProcessingErrorsMessage(t *testing.T) {
	errs := &ProcessingErrors{}
	assert.Equal(t, "no errors", errs.Error())

	errs.Add("x.json", errors.New("broken"))
	assert.Equal(t, "x.json: broken", errs.Error())

	errs.Add("y.json", errors.New("also broken"))
	assert.Contains(t, errs.Error(), "2 payloads failed")
}
