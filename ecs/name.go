package ecs

// DisplayName is a human-readable label for an entity, used in logs and debug tools.
type DisplayName struct {
	Value string
}

func (DisplayName) Name() string { return "DisplayName" }

// NameOf returns the entity's display name, if it has one.
func NameOf(w *World, eid EntityID) (string, bool) {
	name, err := Get[DisplayName](w, eid)
	if err != nil {
		return "", false
	}
	return name.Value, true
}

// Label formats an entity for humans: "name(id)" when it has a display name, otherwise "id".
func Label(w *World, eid EntityID) string {
	if name, ok := NameOf(w, eid); ok {
		return name + "(" + eid.String() + ")"
	}
	return eid.String()
}
