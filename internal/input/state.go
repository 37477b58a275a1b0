package input

import "sync"

// Command разовая UI-команда, не влияющая на симуляцию
type Command uint8

const (
	CommandToggleMenu Command = iota
	CommandToggleDrawUI
)

// String возвращает имя команды
func (c Command) String() string {
	switch c {
	case CommandToggleMenu:
		return "toggle_menu"
	case CommandToggleDrawUI:
		return "toggle_draw_ui"
	default:
		return "unknown"
	}
}

// State текущее состояние клавиш.
// Пишется обработчиком событий ввода, читается симуляцией через Snapshot в начале тика.
type State struct {
	mu             sync.Mutex
	bindings       Bindings
	held           map[Key]bool
	pressed        map[Key]bool // Нажатия с момента последнего снимка
	placing        bool
	placeTriggered bool
	commands       []Command
}

// NewState создаёт состояние ввода с указанной раскладкой
func NewState(bindings Bindings) *State {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &State{
		bindings: bindings,
		held:     make(map[Key]bool),
		pressed:  make(map[Key]bool),
	}
}

// Bindings возвращает раскладку, с которой создано состояние
func (s *State) Bindings() Bindings {
	return s.bindings
}

// Press обрабатывает нажатие клавиши.
// Автоповтор ОС приходит повторными Press и считается новым нажатием.
func (s *State) Press(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.held[key] = true
	s.pressed[key] = true

	for _, a := range s.bindings.actionsFor(key) {
		switch a {
		case ActionPlace:
			s.placing = true
		case ActionToggleMenu:
			s.commands = append(s.commands, CommandToggleMenu)
		case ActionToggleDrawUI:
			s.commands = append(s.commands, CommandToggleDrawUI)
		}
	}
}

// Release обрабатывает отпускание клавиши
func (s *State) Release(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.held, key)

	for _, a := range s.bindings.actionsFor(key) {
		if a == ActionPlace {
			s.placing = s.anyHeldLocked(ActionPlace)
		}
	}
}

// ReleaseAll отпускает все клавиши (например, при потере фокуса окном)
func (s *State) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.held = make(map[Key]bool)
	s.placing = false
}

// TriggerPlace разовая команда установки блока (например, правый клик).
// Выполняется в ближайшем тике.
func (s *State) TriggerPlace() {
	s.mu.Lock()
	s.placeTriggered = true
	s.mu.Unlock()
}

// Snapshot фиксирует состояние для одного тика и сбрасывает накопленные нажатия
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	held := make(map[Key]bool, len(s.held))
	for k := range s.held {
		held[k] = true
	}

	snap := Snapshot{
		bindings:    s.bindings,
		held:        held,
		justPressed: s.pressed,
		Commands:    s.commands,
	}
	snap.PlacingActive = s.placing || s.placeTriggered || snap.JustPressed(ActionPlace)

	s.pressed = make(map[Key]bool)
	s.commands = nil
	s.placeTriggered = false
	return snap
}

func (s *State) anyHeldLocked(a Action) bool {
	for _, k := range s.bindings[a] {
		if s.held[k] {
			return true
		}
	}
	return false
}

// Snapshot неизменяемый снимок ввода на один тик
type Snapshot struct {
	bindings    Bindings
	held        map[Key]bool
	justPressed map[Key]bool

	// PlacingActive блоки ставятся в этом тике
	PlacingActive bool
	// Commands UI-команды, накопленные с прошлого тика
	Commands []Command
}

// Held возвращает true, если удерживается любая клавиша действия
func (s Snapshot) Held(a Action) bool {
	for _, k := range s.bindings[a] {
		if s.held[k] {
			return true
		}
	}
	return false
}

// JustPressed возвращает true, если клавиша действия была нажата с прошлого тика
func (s Snapshot) JustPressed(a Action) bool {
	for _, k := range s.bindings[a] {
		if s.justPressed[k] {
			return true
		}
	}
	return false
}

// HeldKeys количество удерживаемых клавиш
func (s Snapshot) HeldKeys() int {
	return len(s.held)
}
