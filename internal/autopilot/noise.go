package autopilot

import (
	"github.com/aquilax/go-perlin"
)

// Параметры шума Перлина
const (
	alpha   = 2.0 // Сглаживание шума
	beta    = 2.0 // Частота шума
	octaves = 3   // Количество октав
)

// Noise генератор шума Перлина с фиксированным сидом
type Noise struct {
	p *perlin.Perlin
}

// NewNoise создаёт генератор для сида
func NewNoise(seed int64) *Noise {
	return &Noise{p: perlin.NewPerlin(alpha, beta, octaves, seed)}
}

// At возвращает значение шума для указанных координат (от 0 до 1)
func (n *Noise) At(x, y float64) float64 {
	// Получаем значение шума (от -1 до 1)
	v := n.p.Noise2D(x, y)

	// Преобразуем в диапазон от 0 до 1
	v = (v + 1.0) / 2.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
