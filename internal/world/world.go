package world

import (
	"errors"
	"fmt"
)

var (
	// ErrPermanentBlock попытка добавить второй постоянный блок
	ErrPermanentBlock = errors.New("world: permanent block is already present")
	// ErrGroundNotPermanent земля мира обязана быть постоянной
	ErrGroundNotPermanent = errors.New("world: ground block must be permanent")
)

// Stats счётчики содержимого мира
type Stats struct {
	Total     int
	Permanent int
	Placed    int
}

// World хранит блоки в порядке добавления.
// Всегда содержит ровно один постоянный блок — землю.
// Мир не потокобезопасен: изменяется только внутри шага симуляции.
type World struct {
	blocks []Block
}

// NewWorld создаёт мир с плитой земли
func NewWorld(ground Block) (*World, error) {
	if !ground.Permanent {
		return nil, ErrGroundNotPermanent
	}
	return &World{blocks: []Block{ground}}, nil
}

// Insert добавляет блок в конец мира
func (w *World) Insert(b Block) error {
	if b.Permanent {
		return fmt.Errorf("insert %s: %w", b.ID, ErrPermanentBlock)
	}
	w.blocks = append(w.blocks, b)
	return nil
}

// RemoveLast удаляет самый новый блок, удовлетворяющий предикату.
// Постоянные блоки не удаляются никогда.
func (w *World) RemoveLast(pred func(Block) bool) (Block, bool) {
	for i := len(w.blocks) - 1; i >= 0; i-- {
		b := w.blocks[i]
		if b.Permanent || !pred(b) {
			continue
		}
		w.blocks = append(w.blocks[:i], w.blocks[i+1:]...)
		return b, true
	}
	return Block{}, false
}

// RemoveAll удаляет за один проход все блоки, удовлетворяющие предикату,
// сохраняя порядок оставшихся. Возвращает удалённые блоки.
func (w *World) RemoveAll(pred func(Block) bool) []Block {
	var removed []Block
	kept := w.blocks[:0]
	for _, b := range w.blocks {
		if !b.Permanent && pred(b) {
			removed = append(removed, b)
			continue
		}
		kept = append(kept, b)
	}
	// Обнуляем хвост, чтобы не держать ссылки на удалённые блоки
	for i := len(kept); i < len(w.blocks); i++ {
		w.blocks[i] = Block{}
	}
	w.blocks = kept
	return removed
}

// Blocks возвращает копию блоков в порядке добавления
func (w *World) Blocks() []Block {
	out := make([]Block, len(w.blocks))
	copy(out, w.blocks)
	return out
}

// Each обходит блоки в порядке добавления без копирования.
// Обход прекращается, если fn вернула false.
func (w *World) Each(fn func(Block) bool) {
	for _, b := range w.blocks {
		if !fn(b) {
			return
		}
	}
}

// Len возвращает количество блоков, включая землю
func (w *World) Len() int {
	return len(w.blocks)
}

// Ground возвращает постоянную плиту земли
func (w *World) Ground() Block {
	for _, b := range w.blocks {
		if b.Permanent {
			return b
		}
	}
	return Block{}
}

// Stats возвращает счётчики блоков
func (w *World) Stats() Stats {
	s := Stats{Total: len(w.blocks)}
	for _, b := range w.blocks {
		if b.Permanent {
			s.Permanent++
		}
	}
	s.Placed = s.Total - s.Permanent
	return s
}
