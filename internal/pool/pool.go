// Package pool provides sync.Pool wrappers for the objects the desktop
// renderer allocates every frame.
package pool

import (
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

var layerSlicePool = sync.Pool{
	New: func() any {
		s := make([]*lipgloss.Layer, 0, 16)
		return &s
	},
}

// GetStringBuilder returns an empty builder from the pool.
func GetStringBuilder() *strings.Builder {
	sb := stringBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	return sb
}

// PutStringBuilder returns sb to the pool. Oversized builders are dropped.
func PutStringBuilder(sb *strings.Builder) {
	if sb == nil || sb.Cap() > 64*1024 {
		return
	}
	sb.Reset()
	stringBuilderPool.Put(sb)
}

// GetLayerSlice returns an empty layer slice from the pool.
func GetLayerSlice() *[]*lipgloss.Layer {
	s := layerSlicePool.Get().(*[]*lipgloss.Layer)
	*s = (*s)[:0]
	return s
}

// PutLayerSlice returns s to the pool.
func PutLayerSlice(s *[]*lipgloss.Layer) {
	if s == nil {
		return
	}
	clear(*s)
	*s = (*s)[:0]
	layerSlicePool.Put(s)
}
