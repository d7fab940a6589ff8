package debugui

import "github.com/plus3/pixelworld/ecs"

// Panels is the set of inspector windows attached to the debug UI entity.
type Panels struct {
	*EntityBrowserComponent
	*ComponentInspectorComponent
	*StorageViewerComponent
	*PerformanceStatsComponent
	*QueryDebuggerComponent
	*FrameTimer
}

// PanelSystem renders every debug UI entity. Scheduler is optional and feeds the
// system timings table.
type PanelSystem struct {
	Panels    ecs.Query[Panels]
	Scheduler *ecs.Scheduler
}

func (p *PanelSystem) Execute(frame *ecs.UpdateFrame) {
	for panels := range p.Panels.Values() {
		if selected := panels.StorageViewerComponent.Render(frame.World); selected != nil {
			panels.EntityBrowserComponent.FilterByType(selected)
		}
		panels.EntityBrowserComponent.Render(frame.World)
		panels.ComponentInspectorComponent.Render(frame.World, panels.EntityBrowserComponent.GetSelectedEntity())
		panels.QueryDebuggerComponent.Render(frame.World)
		panels.PerformanceStatsComponent.Render(frame.World, p.Scheduler, panels.FrameTimer.GetDeltaTime())
	}
}

// SpawnDebugUI creates the debug UI entity in world.
func SpawnDebugUI(world *ecs.World) ecs.EntityId {
	id := world.CreateEntity()
	ecs.AddComponent(world, id, NewEntityBrowserComponent(100))
	ecs.AddComponent(world, id, NewComponentInspectorComponent())
	ecs.AddComponent(world, id, NewStorageViewerComponent())
	ecs.AddComponent(world, id, NewPerformanceStatsComponent(120))
	ecs.AddComponent(world, id, NewQueryDebuggerComponent())
	ecs.AddComponent(world, id, NewFrameTimer())
	return id
}

// RegisterSystems adds the ImGui systems to scheduler. They must run while an
// ImGui frame is open.
func RegisterSystems(scheduler *ecs.Scheduler) {
	scheduler.Register(&ImguiSystem{})
	scheduler.Register(&PanelSystem{Scheduler: scheduler})
}
