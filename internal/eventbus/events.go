package eventbus

import "github.com/annel0/mmo-blockarea/internal/vec"

// Типы событий
const (
	EventAreaWritten = "area.written"
	EventPrefabSaved = "prefab.saved"
)

// AreaWritten - область блоков записана в мир
type AreaWritten struct {
	SessionID string     `json:"session_id,omitempty"`
	Operation string     `json:"operation"` // paste, fill, line, replace, undo, import
	Min       vec.Vec3   `json:"min"`
	Max       vec.Vec3   `json:"max"`
	DataTypes int        `json:"data_types"`
	Changed   int        `json:"changed"`
	Failed    []vec.Vec2 `json:"failed_chunks,omitempty"`
}

// PrefabSaved - заготовка сохранена в репозиторий
type PrefabSaved struct {
	Name   string   `json:"name"`
	Size   vec.Vec3 `json:"size"`
	Source string   `json:"source"` // copy, export
}
