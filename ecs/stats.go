package ecs

import "sort"

// StorageStats describes one component storage.
type StorageStats struct {
	ComponentType string
	EntityCount   int
}

// WorldStats is a point-in-time summary of a World.
type WorldStats struct {
	EntityCount      int
	StorageCount     int
	ComponentCount   int
	SingletonCount   int
	StorageBreakdown []StorageStats
	SingletonTypes   []string
}

// CollectStats summarizes entity, storage and singleton counts.
// Storages are listed in registration order; singleton names are sorted.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		EntityCount:      w.EntityCount(),
		StorageCount:     len(w.registry.order),
		SingletonCount:   len(w.singletons),
		StorageBreakdown: make([]StorageStats, 0, len(w.registry.order)),
		SingletonTypes:   make([]string, 0, len(w.singletons)),
	}

	for _, t := range w.registry.order {
		n := w.registry.storages[t].Len()
		stats.ComponentCount += n
		stats.StorageBreakdown = append(stats.StorageBreakdown, StorageStats{
			ComponentType: t.String(),
			EntityCount:   n,
		})
	}

	for t := range w.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
