package debugui

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pixelworld/ecs"
)

type StorageInfo struct {
	Type        reflect.Type
	EntityCount int
}

type StorageViewerCache struct {
	storages  []StorageInfo
	signature worldSignature
}

func NewStorageViewerComponent() StorageViewerComponent {
	return StorageViewerComponent{
		cache:         &StorageViewerCache{},
		sortColumn:    1,
		sortAscending: false,
	}
}

// Render lists every component storage with its size. It returns the type whose row
// was clicked this frame, or nil.
func (sv *StorageViewerComponent) Render(world *ecs.World) reflect.Type {
	if !imgui.BeginV("Storage Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	sv.refresh(world)

	maxEntityCount := 0
	for _, info := range sv.cache.storages {
		maxEntityCount = max(maxEntityCount, info.EntityCount)
	}

	var clicked reflect.Type

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("StorageTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.sortColumn = int(spec.ColumnIndex())
			sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sv.sortStorages()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, info := range sv.cache.storages {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(info.Type.String(), sv.selectedType == info.Type, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				sv.selectedType = info.Type
				clicked = info.Type
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(info.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func (sv *StorageViewerComponent) refresh(world *ecs.World) {
	sig := signatureOf(world)
	if sv.cache.storages != nil && sv.cache.signature == sig {
		return
	}
	sv.cache.signature = sig

	types := world.StorageTypes()
	sv.cache.storages = make([]StorageInfo, 0, len(types))
	for _, t := range types {
		sv.cache.storages = append(sv.cache.storages, StorageInfo{
			Type:        t,
			EntityCount: world.StorageLen(t),
		})
	}

	sv.sortStorages()
}

func (sv *StorageViewerComponent) sortStorages() {
	sort.SliceStable(sv.cache.storages, func(i, j int) bool {
		a, b := sv.cache.storages[i], sv.cache.storages[j]
		var less bool

		switch sv.sortColumn {
		case 0:
			less = a.Type.String() < b.Type.String()
		default:
			less = a.EntityCount < b.EntityCount
		}

		if !sv.sortAscending {
			return !less
		}
		return less
	})
}
