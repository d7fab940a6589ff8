// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pixelworld/ecs"
	"github.com/plus3/pixelworld/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. imgui.ini persistence is disabled.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: backend}
}

// Install stores backend as a world singleton, registers the ImGui systems on
// scheduler and spawns the inspector panels. The returned accessor is what the
// game loop uses to open and close ImGui frames around scheduler.Once.
func Install(world *ecs.World, scheduler *ecs.Scheduler, backend ImguiBackend) *ecs.Singleton[ImguiBackend] {
	singleton := ecs.NewSingleton[ImguiBackend](world, backend)
	debugui.RegisterSystems(scheduler)
	debugui.SpawnDebugUI(world)
	return singleton
}
