package debugui

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pixelworld/ecs"
)

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedComponentTypes: make(map[reflect.Type]bool),
		maxListedEntities:      50,
	}
}

// Render lets the user pick component types and shows which entities hold all of them.
func (qd *QueryDebuggerComponent) Render(world *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedComponentTypes = make(map[reflect.Type]bool)
	}

	types := world.StorageTypes()
	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })

	for _, compType := range types {
		selected := qd.selectedComponentTypes[compType]
		if imgui.Checkbox(compType.String(), &selected) {
			if selected {
				qd.selectedComponentTypes[compType] = true
			} else {
				delete(qd.selectedComponentTypes, compType)
			}
		}
	}

	imgui.Separator()

	required := make([]reflect.Type, 0, len(qd.selectedComponentTypes))
	for t := range qd.selectedComponentTypes {
		required = append(required, t)
	}

	if len(required) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matches := MatchingEntities(world, required)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))

	if imgui.TreeNodeStr("Entities") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryEntityTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for _, id := range matches[:min(len(matches), qd.maxListedEntities)] {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", id))

				imgui.TableSetColumnIndex(1)
				held := world.ComponentTypes(id)
				names := make([]string, len(held))
				for i, t := range held {
					names[i] = t.String()
				}
				imgui.Text(strings.Join(names, ", "))
			}

			imgui.EndTable()
		}
		if len(matches) > qd.maxListedEntities {
			imgui.Text(fmt.Sprintf("... and %d more", len(matches)-qd.maxListedEntities))
		}
		imgui.TreePop()
	}

	imgui.End()
}

// MatchingEntities returns, in id order, the entities that hold every type in required.
func MatchingEntities(world *ecs.World, required []reflect.Type) []ecs.EntityId {
	var matches []ecs.EntityId
	if len(required) == 0 {
		return matches
	}

	for id := range world.Entities() {
		ok := true
		for _, t := range required {
			if !world.HasComponent(id, t) {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, id)
		}
	}
	return matches
}
