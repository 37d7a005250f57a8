package edit

import (
	"context"
	"fmt"
	"time"

	"github.com/annel0/mmo-blockarea/internal/blockarea"
	"github.com/annel0/mmo-blockarea/internal/eventbus"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
)

// Plane - плоскость отражения буфера обмена
type Plane int

const (
	PlaneXY Plane = iota // меняется Z
	PlaneXZ              // меняется Y
	PlaneYZ              // меняется X
)

// ParsePlane разбирает имя плоскости ("xy", "xz", "yz")
func ParsePlane(name string) (Plane, error) {
	switch name {
	case "xy":
		return PlaneXY, nil
	case "xz":
		return PlaneXZ, nil
	case "yz":
		return PlaneYZ, nil
	}
	return 0, fmt.Errorf("неизвестная плоскость отражения: %q", name)
}

// Session - состояние одного редактора: буфер обмена и стек отката
type Session struct {
	ID      string
	Owner   string
	Created time.Time

	svc       *Service
	clipboard *blockarea.BlockArea
	undo      []*blockarea.BlockArea
}

// Clipboard возвращает буфер обмена или nil
func (s *Session) Clipboard() *blockarea.BlockArea {
	return s.clipboard
}

// SetClipboard заменяет буфер обмена копией области
func (s *Session) SetClipboard(area *blockarea.BlockArea) {
	s.clipboard = area.Clone()
}

// UndoDepth возвращает количество доступных откатов
func (s *Session) UndoDepth() int {
	return len(s.undo)
}

// Copy читает регион мира со всеми видами данных в буфер обмена
func (s *Session) Copy(ctx context.Context, region vec.Cuboid) (err error) {
	ctx, done := s.svc.startOp(ctx, s, "copy", region)
	defer func() { done(0, err) }()

	if err := s.svc.checkVolume(region); err != nil {
		return err
	}
	area := blockarea.New()
	if err := area.ReadAll(s.svc.world, region); err != nil {
		return err
	}
	s.clipboard = area
	return nil
}

// Paste сливает буфер обмена с миром так, что его угол (0,0,0) попадает в at
func (s *Session) Paste(ctx context.Context, at vec.Vec3, strategy blockarea.MergeStrategy) (changed int, err error) {
	if s.clipboard == nil {
		return 0, ErrEmptyClipboard
	}
	region := vec.Cuboid{P1: at, P2: at.Add(s.clipboard.Size()).Sub(vec.Vec3{X: 1, Y: 1, Z: 1})}

	ctx, done := s.svc.startOp(ctx, s, "paste", region)
	defer func() { done(changed, err) }()

	err = s.modify(ctx, "paste", region, func(target *blockarea.BlockArea) {
		target.MergeAt(s.clipboard, at, strategy)
	}, &changed)
	return changed, err
}

// RotateClipboardCW поворачивает буфер обмена по часовой стрелке (вид сверху)
func (s *Session) RotateClipboardCW() error {
	if s.clipboard == nil {
		return ErrEmptyClipboard
	}
	s.clipboard.RotateCW()
	return nil
}

// RotateClipboardCCW поворачивает буфер обмена против часовой стрелки (вид сверху)
func (s *Session) RotateClipboardCCW() error {
	if s.clipboard == nil {
		return ErrEmptyClipboard
	}
	s.clipboard.RotateCCW()
	return nil
}

// MirrorClipboard отражает буфер обмена относительно плоскости
func (s *Session) MirrorClipboard(plane Plane) error {
	if s.clipboard == nil {
		return ErrEmptyClipboard
	}
	switch plane {
	case PlaneXY:
		s.clipboard.MirrorXY()
	case PlaneXZ:
		s.clipboard.MirrorXZ()
	case PlaneYZ:
		s.clipboard.MirrorYZ()
	default:
		return fmt.Errorf("неизвестная плоскость отражения: %d", plane)
	}
	return nil
}

// Fill заполняет регион мира блоком
func (s *Session) Fill(ctx context.Context, region vec.Cuboid, state block.State) (changed int, err error) {
	region.Sort()
	ctx, done := s.svc.startOp(ctx, s, "fill", region)
	defer func() { done(changed, err) }()

	err = s.modify(ctx, "fill", region, func(area *blockarea.BlockArea) {
		area.Fill(blockarea.DataBlocks, blockarea.NewVoxel(state))
	}, &changed)
	return changed, err
}

// Line рисует в мире отрезок блоков от p1 до p2 включительно
func (s *Session) Line(ctx context.Context, p1, p2 vec.Vec3, state block.State) (changed int, err error) {
	region := vec.NewCuboid(p1, p2)
	ctx, done := s.svc.startOp(ctx, s, "line", region)
	defer func() { done(changed, err) }()

	err = s.modify(ctx, "line", region, func(area *blockarea.BlockArea) {
		area.Line(p1, p2, blockarea.DataBlocks, blockarea.NewVoxel(state))
	}, &changed)
	return changed, err
}

// Replace заменяет в регионе все блоки from на to (тип и метаданные должны совпасть)
func (s *Session) Replace(ctx context.Context, region vec.Cuboid, from, to block.State) (changed int, err error) {
	region.Sort()
	ctx, done := s.svc.startOp(ctx, s, "replace", region)
	defer func() { done(changed, err) }()

	err = s.modify(ctx, "replace", region, func(area *blockarea.BlockArea) {
		size := area.Size()
		for y := 0; y < size.Y; y++ {
			for z := 0; z < size.Z; z++ {
				for x := 0; x < size.X; x++ {
					rel := vec.Vec3{X: x, Y: y, Z: z}
					if area.GetRelBlock(rel) == from {
						area.SetRelBlock(rel, to)
					}
				}
			}
		}
	}, &changed)
	return changed, err
}

// Undo возвращает миру состояние до последней изменяющей операции
func (s *Session) Undo(ctx context.Context) (err error) {
	if len(s.undo) == 0 {
		return ErrNothingToUndo
	}
	snapshot := s.undo[len(s.undo)-1]

	ctx, done := s.svc.startOp(ctx, s, "undo", snapshot.Bounds())
	defer func() { done(snapshot.Volume(), err) }()

	if err := s.svc.writeBack(ctx, s, "undo", snapshot, snapshot.Volume()); err != nil {
		return err
	}
	s.undo = s.undo[:len(s.undo)-1]
	return nil
}

// modify читает регион, применяет op и записывает результат обратно.
// Состояние до изменения попадает в стек отката.
func (s *Session) modify(ctx context.Context, op string, region vec.Cuboid, apply func(*blockarea.BlockArea), changed *int) error {
	if err := s.svc.checkVolume(region); err != nil {
		return err
	}

	area := blockarea.New()
	if err := area.ReadAll(s.svc.world, region); err != nil {
		return err
	}
	before := area.Clone()

	apply(area)

	*changed = countChanged(before, area)
	s.pushUndo(before)
	return s.svc.writeBack(ctx, s, op, area, *changed)
}

// pushUndo добавляет снимок, вытесняя самые старые сверх UndoDepth
func (s *Session) pushUndo(snapshot *blockarea.BlockArea) {
	depth := s.svc.cfg.UndoDepth
	if depth <= 0 {
		return
	}
	s.undo = append(s.undo, snapshot)
	if over := len(s.undo) - depth; over > 0 {
		clear(s.undo[:over])
		s.undo = s.undo[over:]
	}
}

// countChanged считает блоки, отличающиеся в двух областях одного размера
func countChanged(before, after *blockarea.BlockArea) int {
	a, b := before.Blocks(), after.Blocks()
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}

// SaveClipboard сохраняет буфер обмена как именованную заготовку
func (s *Session) SaveClipboard(ctx context.Context, name string) error {
	if s.svc.prefabs == nil {
		return ErrNoPrefabRepo
	}
	if s.clipboard == nil {
		return ErrEmptyClipboard
	}
	if err := s.svc.prefabs.Save(ctx, name, s.clipboard); err != nil {
		return err
	}
	s.svc.publish(ctx, eventbus.EventPrefabSaved, eventbus.PrefabSaved{
		Name:   name,
		Size:   s.clipboard.Size(),
		Source: "copy",
	}, s.ID)
	return nil
}

// LoadClipboard загружает заготовку в буфер обмена
func (s *Session) LoadClipboard(ctx context.Context, name string) error {
	if s.svc.prefabs == nil {
		return ErrNoPrefabRepo
	}
	area, found, err := s.svc.prefabs.Load(ctx, name)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("заготовка %q не найдена", name)
	}
	s.clipboard = area
	return nil
}
