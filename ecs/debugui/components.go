package debugui

import (
	"reflect"
	"time"

	"github.com/plus3/pixelworld/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	filterText         string
	filterType         reflect.Type
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntityId ecs.EntityId
	fields           map[reflect.Type][]FieldInfo
}

type StorageViewerComponent struct {
	cache         *StorageViewerCache
	selectedType  reflect.Type
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerComponent struct {
	selectedComponentTypes map[reflect.Type]bool
	maxListedEntities      int
}

// FrameTimer measures wall-clock time between overlay frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

// worldSignature changes whenever entities, storages or component rows are added.
type worldSignature struct {
	entities   int
	storages   int
	components int
}

func signatureOf(world *ecs.World) worldSignature {
	stats := world.CollectStats()
	return worldSignature{
		entities:   stats.EntityCount,
		storages:   stats.StorageCount,
		components: stats.ComponentCount,
	}
}
