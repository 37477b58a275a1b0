package block

import "fmt"

// ColorIndex номер цвета в палитре (1..9, как цифровые клавиши)
type ColorIndex uint8

const (
	FirstColor   ColorIndex = 1
	LastColor    ColorIndex = 9
	DefaultColor            = FirstColor
)

type paletteEntry struct {
	rgb  uint32
	name string
}

var palette = [...]paletteEntry{
	{0xff0000, "red"},
	{0xffa500, "orange"},
	{0xffff00, "yellow"},
	{0x00ff00, "green"},
	{0x00ffff, "cyan"},
	{0x0000ff, "blue"},
	{0x800080, "purple"},
	{0xffffff, "white"},
	{0x888888, "gray"},
}

// Valid проверяет, является ли индекс допустимым номером цвета
func Valid(idx ColorIndex) bool {
	return idx >= FirstColor && idx <= LastColor
}

// Color возвращает RGB цвета по индексу
func Color(idx ColorIndex) (uint32, bool) {
	if !Valid(idx) {
		return 0, false
	}
	return palette[idx-1].rgb, true
}

// ColorName возвращает название цвета
func ColorName(idx ColorIndex) string {
	if !Valid(idx) {
		return "unknown"
	}
	return palette[idx-1].name
}

// Label текст подписи выбранного блока для UI
func Label(idx ColorIndex) string {
	return fmt.Sprintf("Selected Block: %d", idx)
}

// Palette возвращает копию всей палитры в порядке индексов
func Palette() []uint32 {
	colors := make([]uint32, len(palette))
	for i, e := range palette {
		colors[i] = e.rgb
	}
	return colors
}
