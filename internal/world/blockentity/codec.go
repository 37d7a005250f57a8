package blockentity

import (
	"encoding/json"
	"fmt"

	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
)

// record - сериализованное представление сущности
type record struct {
	BlockType block.Type      `json:"block_type"`
	Pos       vec.Vec3        `json:"pos"`
	Data      json.RawMessage `json:"data,omitempty"`
}

type furnaceData struct {
	Input    Item `json:"input"`
	Fuel     Item `json:"fuel"`
	Output   Item `json:"output"`
	CookTime int  `json:"cook_time"`
	BurnTime int  `json:"burn_time"`
}

// Marshal сериализует сущность в JSON
func Marshal(e Entity) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch v := e.(type) {
	case *Chest:
		data, err = json.Marshal(v.Slots)
	case *Furnace:
		data, err = json.Marshal(furnaceData{
			Input: v.Input, Fuel: v.Fuel, Output: v.Output,
			CookTime: v.CookTime, BurnTime: v.BurnTime,
		})
	case *Sign:
		data, err = json.Marshal(v.Lines)
	case *EnderChest:
	default:
		return nil, fmt.Errorf("неизвестный тип сущности блока %T", e)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации сущности: %w", err)
	}
	return json.Marshal(record{BlockType: e.BlockType(), Pos: e.Pos(), Data: data})
}

// Unmarshal восстанавливает сущность из JSON
func Unmarshal(raw []byte) (Entity, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("ошибка десериализации сущности: %w", err)
	}

	e := New(rec.BlockType, rec.Pos)
	if e == nil {
		return nil, fmt.Errorf("тип блока %d не имеет сущности", rec.BlockType)
	}
	if len(rec.Data) == 0 {
		return e, nil
	}

	var err error
	switch v := e.(type) {
	case *Chest:
		err = json.Unmarshal(rec.Data, &v.Slots)
	case *Furnace:
		var fd furnaceData
		if err = json.Unmarshal(rec.Data, &fd); err == nil {
			v.Input, v.Fuel, v.Output = fd.Input, fd.Fuel, fd.Output
			v.CookTime, v.BurnTime = fd.CookTime, fd.BurnTime
		}
	case *Sign:
		err = json.Unmarshal(rec.Data, &v.Lines)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка данных сущности %d: %w", rec.BlockType, err)
	}
	return e, nil
}
