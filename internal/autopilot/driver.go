package autopilot

import (
	"github.com/annel0/voxel-sandbox/internal/input"
	"github.com/annel0/voxel-sandbox/internal/logging"
)

// Каналы шума: у каждого действия своя строка по оси Y
const (
	chanWalk = iota
	chanTurn
	chanJump
	chanPlace
	chanRemove
	chanColor
	chanTilt
)

// Driver нажимает клавиши по шуму Перлина: бродит, крутит камеру,
// прыгает, ставит и убирает блоки. Одинаковый сид даёт одинаковый ввод.
type Driver struct {
	Speed float64 // Шаг по шуму за тик

	noise *Noise
	held  map[input.Key]bool
	log   *logging.Logger
}

// New создаёт автопилот
func New(seed int64) *Driver {
	return &Driver{
		Speed: 0.05,
		noise: NewNoise(seed),
		held:  make(map[input.Key]bool),
		log:   logging.GetComponentLogger("autopilot"),
	}
}

func (d *Driver) sample(tick uint64, channel int) float64 {
	// Смещение 0.37 уводит выборку с узлов решётки, где шум равен нулю
	return d.noise.At(float64(tick)*d.Speed, float64(channel)+0.37)
}

// Drive выставляет ввод на тик. Подходит как sandbox.Loop.BeforeTick.
func (d *Driver) Drive(tick uint64, st *input.State) {
	walk := d.sample(tick, chanWalk)
	d.set(st, input.KeyW, walk > 0.55)
	d.set(st, input.KeyS, walk < 0.3)

	turn := d.sample(tick, chanTurn)
	d.set(st, input.KeyArrowLeft, turn > 0.6)
	d.set(st, input.KeyArrowRight, turn < 0.4)

	tilt := d.sample(tick, chanTilt)
	d.set(st, input.KeyArrowUp, tilt > 0.65)
	d.set(st, input.KeyArrowDown, tilt < 0.35)

	d.set(st, input.KeySpace, d.sample(tick, chanJump) > 0.62)

	// Разовые действия раз в 8 тиков, чтобы не засыпать мир блоками
	removeAll := false
	if tick%8 == 0 {
		if color := d.sample(tick, chanColor); color > 0.6 {
			n := 1 + int(color*100)%9
			d.tap(st, input.DigitKey(n))
		}

		if d.sample(tick, chanPlace) > 0.5 {
			st.TriggerPlace()
		}

		if remove := d.sample(tick, chanRemove); remove > 0.6 {
			removeAll = remove > 0.68
			d.tap(st, input.KeyR)
			d.log.Trace("тик %d: удаление (все=%t)", tick, removeAll)
		}
	}
	// Модификатор должен удерживаться в момент снимка, отпускается на следующем тике
	d.set(st, input.KeyShiftLeft, removeAll)
}

// ReleaseAll отпускает всё, что автопилот держит
func (d *Driver) ReleaseAll(st *input.State) {
	for k := range d.held {
		st.Release(k)
	}
	d.held = make(map[input.Key]bool)
}

func (d *Driver) set(st *input.State, key input.Key, down bool) {
	if d.held[key] == down {
		return
	}
	if down {
		st.Press(key)
	} else {
		st.Release(key)
	}
	d.held[key] = down
}

func (d *Driver) tap(st *input.State, key input.Key) {
	st.Press(key)
	st.Release(key)
}
