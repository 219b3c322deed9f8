package event

import "fmt"

// Type identifies the concrete kind of an Event.
type Type int

const (
	TypeNone Type = iota
	TypeWindowClose
	TypeWindowResize
	TypeWindowFocus
	TypeWindowLostFocus
	TypeKeyPressed
	TypeKeyReleased
	TypeKeyTyped
	TypeMouseButtonPressed
	TypeMouseButtonReleased
	TypeMouseMoved
	TypeMouseScrolled
)

// Category is a bit set used to filter events coarsely.
type Category int

const (
	CategoryNone        Category = 0
	CategoryApplication Category = 1 << 0
	CategoryInput       Category = 1 << 1
	CategoryKeyboard    Category = 1 << 2
	CategoryMouse       Category = 1 << 3
	CategoryMouseButton Category = 1 << 4
)

// Event is a single platform occurrence. An event is owned by the dispatch
// pass that created it; once handled it is not propagated any further.
type Event interface {
	Type() Type
	Name() string
	Categories() Category
	InCategory(c Category) bool
	String() string

	Handled() bool
	// MarkHandled stops further propagation. There is no way back.
	MarkHandled()
}

// base carries the handled flag shared by every event kind.
type base struct{ handled bool }

func (b *base) Handled() bool { return b.handled }
func (b *base) MarkHandled()  { b.handled = true }

// ---- application ----

type WindowCloseEvent struct{ base }

func NewWindowClose() *WindowCloseEvent { return &WindowCloseEvent{} }

func (*WindowCloseEvent) Type() Type                   { return TypeWindowClose }
func (*WindowCloseEvent) Name() string                 { return "WindowCloseEvent" }
func (*WindowCloseEvent) Categories() Category         { return CategoryApplication }
func (e *WindowCloseEvent) InCategory(c Category) bool { return e.Categories()&c != 0 }
func (e *WindowCloseEvent) String() string             { return e.Name() }

type WindowResizeEvent struct {
	base
	Width, Height int
}

func NewWindowResize(w, h int) *WindowResizeEvent { return &WindowResizeEvent{Width: w, Height: h} }

func (*WindowResizeEvent) Type() Type                   { return TypeWindowResize }
func (*WindowResizeEvent) Name() string                 { return "WindowResizeEvent" }
func (*WindowResizeEvent) Categories() Category         { return CategoryApplication }
func (e *WindowResizeEvent) InCategory(c Category) bool { return e.Categories()&c != 0 }
func (e *WindowResizeEvent) String() string {
	return fmt.Sprintf("%s: %d, %d", e.Name(), e.Width, e.Height)
}

type WindowFocusEvent struct{ base }

func NewWindowFocus() *WindowFocusEvent { return &WindowFocusEvent{} }

func (*WindowFocusEvent) Type() Type                   { return TypeWindowFocus }
func (*WindowFocusEvent) Name() string                 { return "WindowFocusEvent" }
func (*WindowFocusEvent) Categories() Category         { return CategoryApplication }
func (e *WindowFocusEvent) InCategory(c Category) bool { return e.Categories()&c != 0 }
func (e *WindowFocusEvent) String() string             { return e.Name() }

type WindowLostFocusEvent struct{ base }

func NewWindowLostFocus() *WindowLostFocusEvent { return &WindowLostFocusEvent{} }

func (*WindowLostFocusEvent) Type() Type                   { return TypeWindowLostFocus }
func (*WindowLostFocusEvent) Name() string                 { return "WindowLostFocusEvent" }
func (*WindowLostFocusEvent) Categories() Category         { return CategoryApplication }
func (e *WindowLostFocusEvent) InCategory(c Category) bool { return e.Categories()&c != 0 }
func (e *WindowLostFocusEvent) String() string             { return e.Name() }

// ---- keyboard ----

type KeyPressedEvent struct {
	base
	Key    Key
	Mods   Mod
	Repeat bool
}

func NewKeyPressed(k Key, mods Mod, repeat bool) *KeyPressedEvent {
	return &KeyPressedEvent{Key: k, Mods: mods, Repeat: repeat}
}

func (*KeyPressedEvent) Type() Type                   { return TypeKeyPressed }
func (*KeyPressedEvent) Name() string                 { return "KeyPressedEvent" }
func (*KeyPressedEvent) Categories() Category         { return CategoryInput | CategoryKeyboard }
func (e *KeyPressedEvent) InCategory(c Category) bool { return e.Categories()&c != 0 }
func (e *KeyPressedEvent) String() string {
	return fmt.Sprintf("%s: %s (repeat=%t)", e.Name(), e.Key, e.Repeat)
}

type KeyReleasedEvent struct {
	base
	Key  Key
	Mods Mod
}

func NewKeyReleased(k Key, mods Mod) *KeyReleasedEvent {
	return &KeyReleasedEvent{Key: k, Mods: mods}
}

func (*KeyReleasedEvent) Type() Type                   { return TypeKeyReleased }
func (*KeyReleasedEvent) Name() string                 { return "KeyReleasedEvent" }
func (*KeyReleasedEvent) Categories() Category         { return CategoryInput | CategoryKeyboard }
func (e *KeyReleasedEvent) InCategory(c Category) bool { return e.Categories()&c != 0 }
func (e *KeyReleasedEvent) String() string             { return fmt.Sprintf("%s: %s", e.Name(), e.Key) }

type KeyTypedEvent struct {
	base
	Char rune
}

func NewKeyTyped(r rune) *KeyTypedEvent { return &KeyTypedEvent{Char: r} }

func (*KeyTypedEvent) Type() Type                   { return TypeKeyTyped }
func (*KeyTypedEvent) Name() string                 { return "KeyTypedEvent" }
func (*KeyTypedEvent) Categories() Category         { return CategoryInput | CategoryKeyboard }
func (e *KeyTypedEvent) InCategory(c Category) bool { return e.Categories()&c != 0 }
func (e *KeyTypedEvent) String() string             { return fmt.Sprintf("%s: %q", e.Name(), e.Char) }

// ---- mouse ----

type MouseButtonPressedEvent struct {
	base
	Button MouseButton
	Mods   Mod
}

func NewMouseButtonPressed(b MouseButton, mods Mod) *MouseButtonPressedEvent {
	return &MouseButtonPressedEvent{Button: b, Mods: mods}
}

func (*MouseButtonPressedEvent) Type() Type { return TypeMouseButtonPressed }
func (*MouseButtonPressedEvent) Name() string {
	return "MouseButtonPressedEvent"
}
func (*MouseButtonPressedEvent) Categories() Category {
	return CategoryInput | CategoryMouse | CategoryMouseButton
}
func (e *MouseButtonPressedEvent) InCategory(c Category) bool { return e.Categories()&c != 0 }
func (e *MouseButtonPressedEvent) String() string {
	return fmt.Sprintf("%s: %d", e.Name(), e.Button)
}

type MouseButtonReleasedEvent struct {
	base
	Button MouseButton
	Mods   Mod
}

func NewMouseButtonReleased(b MouseButton, mods Mod) *MouseButtonReleasedEvent {
	return &MouseButtonReleasedEvent{Button: b, Mods: mods}
}

func (*MouseButtonReleasedEvent) Type() Type { return TypeMouseButtonReleased }
func (*MouseButtonReleasedEvent) Name() string {
	return "MouseButtonReleasedEvent"
}
func (*MouseButtonReleasedEvent) Categories() Category {
	return CategoryInput | CategoryMouse | CategoryMouseButton
}
func (e *MouseButtonReleasedEvent) InCategory(c Category) bool { return e.Categories()&c != 0 }
func (e *MouseButtonReleasedEvent) String() string {
	return fmt.Sprintf("%s: %d", e.Name(), e.Button)
}

type MouseMovedEvent struct {
	base
	X, Y float64
}

func NewMouseMoved(x, y float64) *MouseMovedEvent { return &MouseMovedEvent{X: x, Y: y} }

func (*MouseMovedEvent) Type() Type                   { return TypeMouseMoved }
func (*MouseMovedEvent) Name() string                 { return "MouseMovedEvent" }
func (*MouseMovedEvent) Categories() Category         { return CategoryInput | CategoryMouse }
func (e *MouseMovedEvent) InCategory(c Category) bool { return e.Categories()&c != 0 }
func (e *MouseMovedEvent) String() string {
	return fmt.Sprintf("%s: %.1f, %.1f", e.Name(), e.X, e.Y)
}

type MouseScrolledEvent struct {
	base
	XOffset, YOffset float64
}

func NewMouseScrolled(xoff, yoff float64) *MouseScrolledEvent {
	return &MouseScrolledEvent{XOffset: xoff, YOffset: yoff}
}

func (*MouseScrolledEvent) Type() Type                   { return TypeMouseScrolled }
func (*MouseScrolledEvent) Name() string                 { return "MouseScrolledEvent" }
func (*MouseScrolledEvent) Categories() Category         { return CategoryInput | CategoryMouse }
func (e *MouseScrolledEvent) InCategory(c Category) bool { return e.Categories()&c != 0 }
func (e *MouseScrolledEvent) String() string {
	return fmt.Sprintf("%s: %.2f, %.2f", e.Name(), e.XOffset, e.YOffset)
}
