package config

import "sync"

// GenSettings holds generation configuration
type GenSettings struct {
	mu          sync.RWMutex
	maxGridSize int
	greedyMesh  bool
}

var globalGenSettings = &GenSettings{
	maxGridSize: 256,  // keeps a single pass bounded
	greedyMesh:  true, // merged quads by default in blocky mode
}

// GetMaxGridSize returns the per-axis grid size cap in sample points
func GetMaxGridSize() int {
	globalGenSettings.mu.RLock()
	defer globalGenSettings.mu.RUnlock()
	return globalGenSettings.maxGridSize
}

// SetMaxGridSize sets the per-axis grid size cap
func SetMaxGridSize(size int) {
	globalGenSettings.mu.Lock()
	defer globalGenSettings.mu.Unlock()

	// Clamp to reasonable values
	if size < 2 {
		size = 2
	}
	if size > 1024 {
		size = 1024
	}

	globalGenSettings.maxGridSize = size
}

// GetGreedyMesh returns whether blocky output is meshed with merged quads
func GetGreedyMesh() bool {
	globalGenSettings.mu.RLock()
	defer globalGenSettings.mu.RUnlock()
	return globalGenSettings.greedyMesh
}

// SetGreedyMesh sets whether blocky output is meshed with merged quads
func SetGreedyMesh(enabled bool) {
	globalGenSettings.mu.Lock()
	defer globalGenSettings.mu.Unlock()
	globalGenSettings.greedyMesh = enabled
}
