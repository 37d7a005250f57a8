package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/annel0/mmo-blockarea/internal/blockarea"
	"github.com/annel0/mmo-blockarea/internal/chunkdef"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world"
	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/annel0/mmo-blockarea/internal/world/blockentity"
	"github.com/klauspost/compress/zstd"
)

// Версии двоичных форматов
const (
	chunkFormatVersion  byte = 1
	prefabFormatVersion byte = 1
)

// ErrCorruptData - данные в хранилище повреждены или имеют неизвестный формат
var ErrCorruptData = errors.New("поврежденные данные")

// maxPrefabVolume ограничивает размер декодируемой области
const maxPrefabVolume = 64 * 1024 * 1024

// Compressor сжимает блобы zstd. Безопасен для конкурентного использования.
type Compressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCompressor создаёт компрессор со скоростью сжатия по умолчанию
func NewCompressor() (*Compressor, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("не удалось создать zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("не удалось создать zstd decoder: %w", err)
	}
	return &Compressor{encoder: encoder, decoder: decoder}, nil
}

// Compress сжимает данные
func (c *Compressor) Compress(data []byte) []byte {
	return c.encoder.EncodeAll(data, nil)
}

// Decompress распаковывает данные
func (c *Compressor) Decompress(data []byte) ([]byte, error) {
	out, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrCorruptData, err)
	}
	return out, nil
}

// Close освобождает ресурсы компрессора
func (c *Compressor) Close() {
	c.encoder.Close()
	c.decoder.Close()
}

// EncodeChunk сериализует чанк: блоки, освещение и сущности
func EncodeChunk(chunk *world.Chunk) ([]byte, error) {
	chunk.Mu.RLock()
	defer chunk.Mu.RUnlock()

	var buf bytes.Buffer
	buf.Grow(chunkdef.NumBlocks * 4)
	buf.WriteByte(chunkFormatVersion)
	writeStates(&buf, chunk.Blocks)
	buf.Write(chunk.BlockLight)
	buf.Write(chunk.SkyLight)
	if err := writeEntities(&buf, chunk.Entities); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeChunk восстанавливает чанк из данных EncodeChunk
func DecodeChunk(coords vec.Vec2, data []byte) (*world.Chunk, error) {
	r := bytes.NewReader(data)
	version, err := r.ReadByte()
	if err != nil || version != chunkFormatVersion {
		return nil, fmt.Errorf("%w: версия чанка %d", ErrCorruptData, version)
	}

	chunk := world.NewChunk(coords)
	if err := readStates(r, chunk.Blocks); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, chunk.BlockLight); err != nil {
		return nil, fmt.Errorf("%w: освещение: %v", ErrCorruptData, err)
	}
	if _, err := io.ReadFull(r, chunk.SkyLight); err != nil {
		return nil, fmt.Errorf("%w: освещение неба: %v", ErrCorruptData, err)
	}
	entities, err := readEntities(r)
	if err != nil {
		return nil, err
	}
	for _, be := range entities {
		chunk.Entities[be.Pos()] = be
	}
	return chunk, nil
}

// EncodeArea сериализует область блоков со всеми хранимыми данными
func EncodeArea(area *blockarea.BlockArea) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(prefabFormatVersion)
	buf.WriteByte(byte(area.DataTypes()))
	for _, v := range []vec.Vec3{area.Size(), area.Origin(), area.WEOffset()} {
		writeVec3(&buf, v)
	}
	if area.HasBlocks() {
		writeStates(&buf, area.Blocks())
	}
	if area.HasBlockLight() {
		buf.Write(area.BlockLights())
	}
	if area.HasSkyLight() {
		buf.Write(area.SkyLights())
	}
	if area.HasBlockEntities() {
		if err := writeEntities(&buf, area.BlockEntities()); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// DecodeArea восстанавливает область блоков из данных EncodeArea
func DecodeArea(data []byte) (*blockarea.BlockArea, error) {
	r := bytes.NewReader(data)
	version, err := r.ReadByte()
	if err != nil || version != prefabFormatVersion {
		return nil, fmt.Errorf("%w: версия области %d", ErrCorruptData, version)
	}
	dtByte, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	var vs [3]vec.Vec3
	for i := range vs {
		if vs[i], err = readVec3(r); err != nil {
			return nil, err
		}
	}
	size, origin, weOffset := vs[0], vs[1], vs[2]
	if !blockarea.FitsVolume(size, maxPrefabVolume) {
		return nil, fmt.Errorf("%w: размер области %s", ErrCorruptData, size)
	}

	area := blockarea.New()
	if err := area.Create(size, blockarea.DataType(dtByte)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	area.SetOrigin(origin)
	area.SetWEOffset(weOffset)

	if area.HasBlocks() {
		if err := readStates(r, area.Blocks()); err != nil {
			return nil, err
		}
	}
	if area.HasBlockLight() {
		if _, err := io.ReadFull(r, area.BlockLights()); err != nil {
			return nil, fmt.Errorf("%w: освещение: %v", ErrCorruptData, err)
		}
	}
	if area.HasSkyLight() {
		if _, err := io.ReadFull(r, area.SkyLights()); err != nil {
			return nil, fmt.Errorf("%w: освещение неба: %v", ErrCorruptData, err)
		}
	}
	if area.HasBlockEntities() {
		entities, err := readEntities(r)
		if err != nil {
			return nil, err
		}
		for _, be := range entities {
			if !area.IsValidRelCoords(be.Pos()) {
				return nil, fmt.Errorf("%w: сущность вне области %s", ErrCorruptData, be.Pos())
			}
			area.BlockEntities()[be.Pos()] = be
		}
		area.RemoveNonMatchingBlockEntities()
	}
	return area, nil
}

func writeStates(buf *bytes.Buffer, states []block.State) {
	tmp := make([]byte, 2*len(states))
	for i, s := range states {
		binary.LittleEndian.PutUint16(tmp[2*i:], uint16(s))
	}
	buf.Write(tmp)
}

func readStates(r io.Reader, dst []block.State) error {
	tmp := make([]byte, 2*len(dst))
	if _, err := io.ReadFull(r, tmp); err != nil {
		return fmt.Errorf("%w: блоки: %v", ErrCorruptData, err)
	}
	for i := range dst {
		dst[i] = block.State(binary.LittleEndian.Uint16(tmp[2*i:]))
	}
	return nil
}

func writeVec3(buf *bytes.Buffer, v vec.Vec3) {
	var tmp [12]byte
	binary.LittleEndian.PutUint32(tmp[0:], uint32(int32(v.X)))
	binary.LittleEndian.PutUint32(tmp[4:], uint32(int32(v.Y)))
	binary.LittleEndian.PutUint32(tmp[8:], uint32(int32(v.Z)))
	buf.Write(tmp[:])
}

func readVec3(r io.Reader) (vec.Vec3, error) {
	var tmp [12]byte
	if _, err := io.ReadFull(r, tmp[:]); err != nil {
		return vec.Vec3{}, fmt.Errorf("%w: координаты: %v", ErrCorruptData, err)
	}
	return vec.Vec3{
		X: int(int32(binary.LittleEndian.Uint32(tmp[0:]))),
		Y: int(int32(binary.LittleEndian.Uint32(tmp[4:]))),
		Z: int(int32(binary.LittleEndian.Uint32(tmp[8:]))),
	}, nil
}

// writeEntities пишет количество сущностей и каждую как JSON с префиксом длины
func writeEntities(buf *bytes.Buffer, entities map[vec.Vec3]blockentity.Entity) error {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(len(entities)))
	buf.Write(tmp[:])
	for pos, be := range entities {
		raw, err := blockentity.Marshal(be)
		if err != nil {
			return fmt.Errorf("сериализация сущности %s: %w", pos, err)
		}
		binary.LittleEndian.PutUint32(tmp[:], uint32(len(raw)))
		buf.Write(tmp[:])
		buf.Write(raw)
	}
	return nil
}

func readEntities(r *bytes.Reader) ([]blockentity.Entity, error) {
	var tmp [4]byte
	if _, err := io.ReadFull(r, tmp[:]); err != nil {
		return nil, fmt.Errorf("%w: количество сущностей: %v", ErrCorruptData, err)
	}
	n := int(binary.LittleEndian.Uint32(tmp[:]))
	if n > r.Len() {
		return nil, fmt.Errorf("%w: количество сущностей %d", ErrCorruptData, n)
	}
	res := make([]blockentity.Entity, 0, n)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(r, tmp[:]); err != nil {
			return nil, fmt.Errorf("%w: длина сущности: %v", ErrCorruptData, err)
		}
		size := int(binary.LittleEndian.Uint32(tmp[:]))
		if size > r.Len() {
			return nil, fmt.Errorf("%w: длина сущности %d", ErrCorruptData, size)
		}
		raw := make([]byte, size)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, fmt.Errorf("%w: сущность: %v", ErrCorruptData, err)
		}
		be, err := blockentity.Unmarshal(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
		}
		res = append(res, be)
	}
	return res, nil
}
