package debugui

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pixelworld/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	Types          []reflect.Type
	ComponentNames []string
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	signature     worldSignature
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

// FilterByType restricts the listing to entities holding t. A nil type clears the filter.
func (eb *EntityBrowserComponent) FilterByType(t reflect.Type) {
	if eb.filterType != t {
		eb.currentPage = 0
	}
	eb.filterType = t
}

func (eb *EntityBrowserComponent) Render(world *ecs.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh(world)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterType = nil
		eb.currentPage = 0
	}
	if eb.filterType != nil {
		imgui.Text(fmt.Sprintf("Holding: %s", eb.filterType))
	}

	filtered := eb.filtered()
	totalPages := max(1, (len(filtered)+eb.maxEntitiesPerPage-1)/eb.maxEntitiesPerPage)
	eb.currentPage = min(eb.currentPage, totalPages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
			filtered = eb.filtered()
		}

		start := eb.currentPage * eb.maxEntitiesPerPage
		end := min(start+eb.maxEntitiesPerPage, len(filtered))

		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentNames, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.Types)))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

func (eb *EntityBrowserComponent) refresh(world *ecs.World) {
	sig := signatureOf(world)
	if eb.cache.entities != nil && eb.cache.signature == sig {
		return
	}
	eb.cache.signature = sig

	eb.cache.entities = make([]EntityInfo, 0, sig.entities)
	for id := range world.Entities() {
		types := world.ComponentTypes(id)
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		eb.cache.entities = append(eb.cache.entities, EntityInfo{
			ID:             id,
			Types:          types,
			ComponentNames: names,
		})
	}

	eb.sortEntities()
}

func (eb *EntityBrowserComponent) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 1:
			less = strings.Join(a.ComponentNames, ",") < strings.Join(b.ComponentNames, ",")
		case 2:
			less = len(a.Types) < len(b.Types)
		default:
			less = a.ID < b.ID
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *EntityBrowserComponent) filtered() []EntityInfo {
	if eb.filterText == "" && eb.filterType == nil {
		return eb.cache.entities
	}

	out := make([]EntityInfo, 0, len(eb.cache.entities))
	needle := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterType != nil && !holds(entity.Types, eb.filterType) {
			continue
		}

		if needle != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			names := strings.ToLower(strings.Join(entity.ComponentNames, " "))
			if !strings.Contains(idStr, needle) && !strings.Contains(names, needle) {
				continue
			}
		}

		out = append(out, entity)
	}

	return out
}

func holds(types []reflect.Type, t reflect.Type) bool {
	for _, have := range types {
		if have == t {
			return true
		}
	}
	return false
}

func (eb *EntityBrowserComponent) GetSelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}
