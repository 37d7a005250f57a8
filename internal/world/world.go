package world

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/annel0/mmo-blockarea/internal/blockarea"
	"github.com/annel0/mmo-blockarea/internal/chunkdef"
	"github.com/annel0/mmo-blockarea/internal/logging"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/annel0/mmo-blockarea/internal/world/blockentity"
)

// ChunkStore - постоянное хранилище чанков
type ChunkStore interface {
	// LoadChunk загружает чанк. Второй результат: false, если чанк не сохранялся.
	LoadChunk(coords vec.Vec2) (*Chunk, bool, error)
	// SaveChunk сохраняет чанк целиком
	SaveChunk(chunk *Chunk) error
}

// WorldManager управляет загруженными чанками мира и реализует
// источник данных для областей блоков (blockarea.ChunkProvider)
type WorldManager struct {
	chunks          map[vec.Vec2]*Chunk // Загруженные чанки
	seed            int64               // Глобальный сид для генерации
	generator       *WorldGenerator     // Генератор мира
	store           ChunkStore          // Хранилище (может отсутствовать)
	generateMissing bool                // Генерировать отсутствующие чанки
	autosave        time.Duration       // Период автосохранения
	lastSaveTime    time.Time           // Время последнего сохранения
	saveMu          sync.Mutex          // Мьютекс для операций сохранения
	mu              sync.RWMutex        // Мьютекс для карты чанков
	ctx             context.Context     // Контекст для управления жизненным циклом
	cancelFunc      context.CancelFunc  // Функция отмены контекста
}

// NewWorldManager создаёт новый менеджер мира с указанным сидом.
// По умолчанию отсутствующие чанки генерируются.
func NewWorldManager(seed int64) *WorldManager {
	ctx, cancel := context.WithCancel(context.Background())

	return &WorldManager{
		chunks:          make(map[vec.Vec2]*Chunk),
		seed:            seed,
		generator:       NewWorldGenerator(seed),
		generateMissing: true,
		autosave:        5 * time.Minute,
		lastSaveTime:    time.Now(),
		ctx:             ctx,
		cancelFunc:      cancel,
	}
}

// SetChunkStore устанавливает хранилище чанков
func (wm *WorldManager) SetChunkStore(store ChunkStore) {
	wm.store = store
}

// SetGenerateMissing включает или выключает генерацию отсутствующих чанков
func (wm *WorldManager) SetGenerateMissing(generate bool) {
	wm.generateMissing = generate
}

// SetAutosaveInterval задаёт период автосохранения (0: отключить)
func (wm *WorldManager) SetAutosaveInterval(d time.Duration) {
	wm.autosave = d
}

// Seed возвращает сид мира
func (wm *WorldManager) Seed() int64 {
	return wm.seed
}

// Generator возвращает генератор мира
func (wm *WorldManager) Generator() *WorldGenerator {
	return wm.generator
}

// Run запускает фоновое автосохранение мира
func (wm *WorldManager) Run(parentCtx context.Context) {
	// Если parentCtx != nil, создаем новый контекст отменяемый от него
	if parentCtx != nil {
		childCtx, cancel := context.WithCancel(parentCtx)
		wm.ctx = childCtx
		wm.cancelFunc = cancel
	}

	if wm.autosave > 0 {
		go wm.autoSaveLoop()
	}
}

// autoSaveLoop запускает периодическое сохранение мира
func (wm *WorldManager) autoSaveLoop() {
	ticker := time.NewTicker(wm.autosave)
	defer ticker.Stop()

	for {
		select {
		case <-wm.ctx.Done():
			return
		case <-ticker.C:
			if _, err := wm.SaveWorld(false); err != nil {
				logging.Error("Ошибка автосохранения мира: %v", err)
			}
		}
	}
}

// Stop сохраняет мир и останавливает фоновые процессы
func (wm *WorldManager) Stop() error {
	// Принудительное сохранение при завершении
	_, err := wm.SaveWorld(true)
	wm.cancelFunc()
	return err
}

// SaveWorld сохраняет все измененные чанки. Возвращает количество сохраненных чанков.
func (wm *WorldManager) SaveWorld(force bool) (int, error) {
	wm.saveMu.Lock()
	defer wm.saveMu.Unlock()

	if wm.store == nil {
		return 0, nil
	}
	// Проверяем, нужно ли сохранять
	if !force && time.Since(wm.lastSaveTime) < time.Minute {
		return 0, nil
	}

	wm.mu.RLock()
	dirty := make([]*Chunk, 0, len(wm.chunks))
	for _, chunk := range wm.chunks {
		if chunk.HasChanges() {
			dirty = append(dirty, chunk)
		}
	}
	wm.mu.RUnlock()

	logging.Info("Начато сохранение мира: %d измененных чанков", len(dirty))
	saved := 0
	var firstErr error
	for _, chunk := range dirty {
		if err := wm.store.SaveChunk(chunk); err != nil {
			logging.Error("Ошибка сохранения чанка %s: %v", chunk.Coords, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("сохранение чанка %s: %w", chunk.Coords, err)
			}
			continue
		}
		chunk.ClearChanges()
		saved++
	}

	wm.lastSaveTime = time.Now()
	logging.Info("Сохранение мира завершено: %d чанков", saved)
	return saved, firstErr
}

// LoadedChunks возвращает количество загруженных чанков
func (wm *WorldManager) LoadedChunks() int {
	wm.mu.RLock()
	defer wm.mu.RUnlock()

	return len(wm.chunks)
}

// GetChunk возвращает чанк: из памяти, из хранилища или сгенерированный.
// Если чанк недоступен, возвращается ошибка с blockarea.ErrChunkUnavailable.
func (wm *WorldManager) GetChunk(coords vec.Vec2) (*Chunk, error) {
	wm.mu.RLock()
	chunk, exists := wm.chunks[coords]
	wm.mu.RUnlock()
	if exists {
		return chunk, nil
	}

	chunk, err := wm.loadOrGenerate(coords)
	if err != nil {
		return nil, err
	}

	wm.mu.Lock()
	defer wm.mu.Unlock()
	// Проверяем еще раз под блокировкой записи
	if existing, ok := wm.chunks[coords]; ok {
		return existing, nil
	}
	wm.chunks[coords] = chunk
	return chunk, nil
}

func (wm *WorldManager) loadOrGenerate(coords vec.Vec2) (*Chunk, error) {
	if wm.store != nil {
		chunk, found, err := wm.store.LoadChunk(coords)
		if err != nil {
			return nil, fmt.Errorf("чанк %s: %w: %v", coords, blockarea.ErrChunkUnavailable, err)
		}
		if found {
			logging.Debug("Чанк %s загружен из хранилища", coords)
			return chunk, nil
		}
	}
	if !wm.generateMissing {
		return nil, fmt.Errorf("чанк %s: %w", coords, blockarea.ErrChunkUnavailable)
	}

	chunk := wm.generator.GenerateChunk(coords)
	// Новый чанк еще не сохранен
	chunk.ChangeCounter = 1
	logging.Debug("Чанк %s сгенерирован", coords)
	return chunk, nil
}

// ForEachChunkInRect передает посетителю все чанки прямоугольника.
// Сначала все чанки становятся доступны, поэтому при ошибке посетитель не получает ничего.
func (wm *WorldManager) ForEachChunkInRect(minChunkX, maxChunkX, minChunkZ, maxChunkZ int, v blockarea.ChunkVisitor) error {
	chunks := make([]*Chunk, 0, (maxChunkX-minChunkX+1)*(maxChunkZ-minChunkZ+1))
	for x := minChunkX; x <= maxChunkX; x++ {
		for z := minChunkZ; z <= maxChunkZ; z++ {
			chunk, err := wm.GetChunk(vec.Vec2{X: x, Y: z})
			if err != nil {
				return err
			}
			chunks = append(chunks, chunk)
		}
	}

	for _, chunk := range chunks {
		logging.LogChunkRequest("area", chunk.Coords.X, chunk.Coords.Y)
		if !v.Coords(chunk.Coords.X, chunk.Coords.Y) {
			continue
		}
		chunk.visit(v)
	}
	return nil
}

// WriteBlockArea записывает данные области в мир, начиная с minCoords.
// Недоступные чанки пропускаются и перечисляются в *blockarea.PartialWriteError.
func (wm *WorldManager) WriteBlockArea(area *blockarea.BlockArea, minCoords vec.Vec3, dt blockarea.DataType) error {
	dt &= area.DataTypes()
	size := area.Size()
	if size.Volume() == 0 || dt == 0 {
		return nil
	}

	maxCoords := minCoords.Add(size).Sub(vec.Vec3{X: 1, Y: 1, Z: 1})
	minChunk := chunkdef.BlockToChunk(minCoords.X, minCoords.Z)
	maxChunk := chunkdef.BlockToChunk(maxCoords.X, maxCoords.Z)

	var failed []vec.Vec2
	for x := minChunk.X; x <= maxChunk.X; x++ {
		for z := minChunk.Y; z <= maxChunk.Y; z++ {
			coords := vec.Vec2{X: x, Y: z}
			chunk, err := wm.GetChunk(coords)
			if err != nil {
				logging.Warn("Запись области: чанк %s недоступен: %v", coords, err)
				failed = append(failed, coords)
				continue
			}
			chunk.writeArea(area, minCoords, dt)
		}
	}

	if len(failed) > 0 {
		return &blockarea.PartialWriteError{Failed: failed}
	}
	return nil
}

// GetBlock возвращает блок по мировым координатам
func (wm *WorldManager) GetBlock(pos vec.Vec3) (block.State, error) {
	if !chunkdef.IsValidHeight(pos.Y) {
		return block.AirState, nil
	}
	local, coords := chunkdef.AbsoluteToRelative(pos)
	chunk, err := wm.GetChunk(coords)
	if err != nil {
		return block.AirState, err
	}
	return chunk.GetBlock(local), nil
}

// SetBlock устанавливает блок по мировым координатам
func (wm *WorldManager) SetBlock(pos vec.Vec3, s block.State) error {
	if !chunkdef.IsValidHeight(pos.Y) {
		return fmt.Errorf("высота %d вне мира", pos.Y)
	}
	local, coords := chunkdef.AbsoluteToRelative(pos)
	chunk, err := wm.GetChunk(coords)
	if err != nil {
		return err
	}
	chunk.SetBlock(local, s)
	return nil
}

// GetBlockEntity возвращает сущность блока по мировым координатам
func (wm *WorldManager) GetBlockEntity(pos vec.Vec3) (blockentity.Entity, bool) {
	_, coords := chunkdef.AbsoluteToRelative(pos)
	chunk, err := wm.GetChunk(coords)
	if err != nil {
		return nil, false
	}
	return chunk.GetEntity(pos)
}
