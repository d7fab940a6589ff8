package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pixelworld/ecs"
)

// FieldInfo describes one exported field of a component struct.
type FieldInfo struct {
	Name      string
	Index     int
	IsPointer bool
}

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{
		fields: make(map[reflect.Type][]FieldInfo),
	}
}

// Render shows every component of the selected entity. Edits are written straight
// into the storage through the pointer returned by World.GetComponent.
func (ci *ComponentInspectorComponent) Render(world *ecs.World, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if ci.selectedEntityId == ecs.NilEntity {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	types := world.ComponentTypes(ci.selectedEntityId)
	imgui.Text(fmt.Sprintf("Entity ID: %d", ci.selectedEntityId))
	imgui.Text(fmt.Sprintf("Components: %d", len(types)))
	imgui.Separator()

	for _, compType := range types {
		component := world.GetComponent(ci.selectedEntityId, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			ci.renderValue(compType.Name(), reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspectorComponent) fieldsOf(t reflect.Type) []FieldInfo {
	if cached, ok := ci.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		fields = append(fields, FieldInfo{
			Name:      field.Name,
			Index:     i,
			IsPointer: field.Type.Kind() == reflect.Ptr,
		})
	}

	ci.fields[t] = fields
	return fields
}

// renderValue draws an editor for val. val must be addressable for edits to stick.
func (ci *ComponentInspectorComponent) renderValue(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	id := fmt.Sprintf("##%s", name)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		labelled(name, 150)
		if imgui.InputInt(id, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		labelled(name, 150)
		if imgui.InputInt(id, &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		labelled(name, 150)
		if imgui.InputFloat(id, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		labelled(name, 200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		fields := ci.fieldsOf(val.Type())
		if len(fields) == 0 {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
			return
		}
		for _, field := range fields {
			fieldVal := val.Field(field.Index)
			if field.IsPointer {
				if fieldVal.IsNil() {
					imgui.Text(fmt.Sprintf("%s: nil", field.Name))
					continue
				}
				fieldVal = fieldVal.Elem()
			}
			if fieldVal.Kind() == reflect.Struct {
				if imgui.TreeNodeStr(field.Name) {
					ci.renderValue(field.Name, fieldVal)
					imgui.TreePop()
				}
				continue
			}
			ci.renderValue(field.Name, fieldVal)
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Array:
		imgui.Text(fmt.Sprintf("%s: [%d]%s", name, val.Len(), val.Type().Elem()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func labelled(name string, width float32) {
	imgui.Text(fmt.Sprintf("%s:", name))
	imgui.SameLine()
	imgui.SetNextItemWidth(width)
}
