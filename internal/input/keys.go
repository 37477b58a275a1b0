package input

import (
	"fmt"
	"strings"
)

// Key идентификатор физической клавиши в формате KeyboardEvent.code
type Key string

const (
	KeyW          Key = "KeyW"
	KeyA          Key = "KeyA"
	KeyS          Key = "KeyS"
	KeyD          Key = "KeyD"
	KeyQ          Key = "KeyQ"
	KeyZ          Key = "KeyZ"
	KeyT          Key = "KeyT"
	KeyB          Key = "KeyB"
	KeyY          Key = "KeyY"
	KeyN          Key = "KeyN"
	KeyR          Key = "KeyR"
	KeyO          Key = "KeyO"
	KeySpace      Key = "Space"
	KeyEnter      Key = "Enter"
	KeyShiftLeft  Key = "ShiftLeft"
	KeyShiftRight Key = "ShiftRight"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyDigit0     Key = "Digit0"
)

// DigitKey возвращает клавишу цифры 0..9
func DigitKey(n int) Key {
	return Key(fmt.Sprintf("Digit%d", n))
}

// Action логическое действие, к которому привязываются клавиши
type Action uint8

const (
	ActionMoveForward Action = iota
	ActionMoveBack
	ActionStrafeLeft
	ActionStrafeRight
	ActionTurnLeft
	ActionTurnRight
	ActionLookUp
	ActionLookDown
	ActionZoomIn
	ActionZoomOut
	ActionDistanceUp
	ActionDistanceDown
	ActionHeightUp
	ActionHeightDown
	ActionJump
	ActionRemove
	ActionModifier
	ActionPlace
	ActionToggleMenu
	ActionToggleDrawUI
	ActionColor1
	ActionColor2
	ActionColor3
	ActionColor4
	ActionColor5
	ActionColor6
	ActionColor7
	ActionColor8
	ActionColor9
)

var actionNames = map[Action]string{
	ActionMoveForward:  "move_forward",
	ActionMoveBack:     "move_back",
	ActionStrafeLeft:   "strafe_left",
	ActionStrafeRight:  "strafe_right",
	ActionTurnLeft:     "turn_left",
	ActionTurnRight:    "turn_right",
	ActionLookUp:       "look_up",
	ActionLookDown:     "look_down",
	ActionZoomIn:       "zoom_in",
	ActionZoomOut:      "zoom_out",
	ActionDistanceUp:   "distance_up",
	ActionDistanceDown: "distance_down",
	ActionHeightUp:     "height_up",
	ActionHeightDown:   "height_down",
	ActionJump:         "jump",
	ActionRemove:       "remove",
	ActionModifier:     "modifier",
	ActionPlace:        "place",
	ActionToggleMenu:   "toggle_menu",
	ActionToggleDrawUI: "toggle_draw_ui",
}

func init() {
	for i := 1; i <= 9; i++ {
		actionNames[ColorAction(i)] = fmt.Sprintf("color_%d", i)
	}
}

// String возвращает имя действия, используемое в конфиге
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// ParseAction находит действие по имени из конфига
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// ColorAction возвращает действие выбора цвета n (1..9)
func ColorAction(n int) Action {
	return ActionColor1 + Action(n-1)
}

// Bindings сопоставление действий и клавиш.
// Действие активно, если нажата любая из его клавиш.
type Bindings map[Action][]Key

// DefaultBindings раскладка управления по умолчанию
func DefaultBindings() Bindings {
	b := Bindings{
		ActionMoveForward:  {KeyW},
		ActionMoveBack:     {KeyS},
		ActionStrafeLeft:   {KeyA},
		ActionStrafeRight:  {KeyD},
		ActionTurnLeft:     {KeyArrowLeft},
		ActionTurnRight:    {KeyArrowRight},
		ActionLookUp:       {KeyArrowUp},
		ActionLookDown:     {KeyArrowDown},
		ActionZoomIn:       {KeyQ},
		ActionZoomOut:      {KeyZ},
		ActionDistanceUp:   {KeyT},
		ActionDistanceDown: {KeyB},
		ActionHeightUp:     {KeyY},
		ActionHeightDown:   {KeyN},
		ActionJump:         {KeySpace},
		ActionRemove:       {KeyR},
		ActionModifier:     {KeyShiftLeft, KeyShiftRight},
		ActionPlace:        {KeyEnter},
		ActionToggleMenu:   {KeyDigit0},
		ActionToggleDrawUI: {KeyO},
	}
	for i := 1; i <= 9; i++ {
		b[ColorAction(i)] = []Key{DigitKey(i)}
	}
	return b
}

// Override заменяет клавиши действий, заданных по имени (из конфига)
func (b Bindings) Override(overrides map[string][]string) error {
	for name, keys := range overrides {
		action, err := ParseAction(name)
		if err != nil {
			return fmt.Errorf("controls: %w", err)
		}
		if len(keys) == 0 {
			return fmt.Errorf("controls: action %s has no keys", name)
		}
		bound := make([]Key, len(keys))
		for i, k := range keys {
			bound[i] = Key(k)
		}
		b[action] = bound
	}
	return nil
}

// actionsFor возвращает действия, к которым привязана клавиша
func (b Bindings) actionsFor(key Key) []Action {
	var actions []Action
	for a, keys := range b {
		for _, k := range keys {
			if k == key {
				actions = append(actions, a)
				break
			}
		}
	}
	return actions
}

var controlsOrder = []struct {
	title   string
	actions []Action
}{
	{"Move", []Action{ActionMoveForward, ActionStrafeLeft, ActionMoveBack, ActionStrafeRight}},
	{"Turn & Adjust Elevation", []Action{ActionTurnLeft, ActionTurnRight, ActionLookUp, ActionLookDown}},
	{"Jump", []Action{ActionJump}},
	{"Zoom In/Out", []Action{ActionZoomIn, ActionZoomOut}},
	{"Adjust Block Distance", []Action{ActionDistanceUp, ActionDistanceDown}},
	{"Adjust Block Height", []Action{ActionHeightUp, ActionHeightDown}},
	{"Place Blocks", []Action{ActionPlace}},
	{"Remove Blocks (with modifier: all)", []Action{ActionRemove, ActionModifier}},
	{"Select Block Color", []Action{ActionColor1, ActionColor9}},
	{"Toggle Controls Menu", []Action{ActionToggleMenu}},
}

// DescribeControls формирует текст меню управления для текущих привязок
func DescribeControls(b Bindings) []string {
	lines := make([]string, 0, len(controlsOrder))
	for _, entry := range controlsOrder {
		var keys []string
		for _, a := range entry.actions {
			for _, k := range b[a] {
				keys = append(keys, string(k))
			}
		}
		lines = append(lines, fmt.Sprintf("%s: %s", strings.Join(keys, ", "), entry.title))
	}
	return lines
}
