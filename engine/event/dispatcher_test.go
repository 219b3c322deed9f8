package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchMatchingKind(t *testing.T) {
	e := NewWindowResize(640, 640)
	d := NewDispatcher(e)

	calls := 0
	fired := Dispatch(d, func(ev *WindowResizeEvent) bool {
		calls++
		assert.Equal(t, 640, ev.Width)
		assert.Equal(t, 640, ev.Height)
		return true
	})

	assert.True(t, fired)
	assert.Equal(t, 1, calls)
	assert.True(t, e.Handled())
}

func TestDispatchMismatchIsNoop(t *testing.T) {
	e := NewWindowResize(10, 20)
	d := NewDispatcher(e)

	fired := Dispatch(d, func(*WindowCloseEvent) bool {
		t.Fatal("handler for another kind must not run")
		return true
	})

	assert.False(t, fired)
	assert.False(t, e.Handled())
}

func TestDispatchHandlerReturningFalseLeavesEventUnhandled(t *testing.T) {
	e := NewKeyPressed(KeySpace, ModNone, false)
	d := NewDispatcher(e)

	fired := Dispatch(d, func(*KeyPressedEvent) bool { return false })

	assert.True(t, fired)
	assert.False(t, e.Handled())
}

func TestDispatchSkipsHandledEvent(t *testing.T) {
	e := NewWindowClose()
	d := NewDispatcher(e)

	require.True(t, Dispatch(d, func(*WindowCloseEvent) bool { return true }))

	// A second handler for an overlapping kind must not fire.
	fired := Dispatch(d, func(Event) bool {
		t.Fatal("handled event dispatched twice")
		return false
	})
	assert.False(t, fired)
}

func TestDispatchInCallerOrder(t *testing.T) {
	var order []string
	e := NewWindowClose()
	d := NewDispatcher(e)

	Dispatch(d, func(*WindowCloseEvent) bool { order = append(order, "close"); return false })
	Dispatch(d, func(*WindowResizeEvent) bool { order = append(order, "resize"); return true })
	Dispatch(d, func(Event) bool { order = append(order, "any"); return true })

	assert.Equal(t, []string{"close", "any"}, order)
	assert.True(t, e.Handled())
}

func TestEventCategories(t *testing.T) {
	tests := []struct {
		ev   Event
		in   Category
		out  Category
		name string
	}{
		{NewWindowClose(), CategoryApplication, CategoryInput, "WindowCloseEvent"},
		{NewKeyPressed(KeyA, ModNone, false), CategoryKeyboard, CategoryMouse, "KeyPressedEvent"},
		{NewKeyTyped('x'), CategoryInput, CategoryApplication, "KeyTypedEvent"},
		{NewMouseButtonPressed(MouseButtonLeft, ModNone), CategoryMouseButton, CategoryKeyboard, "MouseButtonPressedEvent"},
		{NewMouseMoved(1, 2), CategoryMouse, CategoryMouseButton, "MouseMovedEvent"},
		{NewMouseScrolled(0, 1), CategoryInput, CategoryApplication, "MouseScrolledEvent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.ev.Name())
			assert.True(t, tt.ev.InCategory(tt.in))
			assert.False(t, tt.ev.InCategory(tt.out))
			assert.False(t, tt.ev.Handled())
		})
	}
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "WindowResizeEvent: 640, 640", NewWindowResize(640, 640).String())
	assert.Equal(t, "KeyPressedEvent: Escape (repeat=false)", NewKeyPressed(KeyEscape, ModNone, false).String())
	assert.Equal(t, "KeyReleasedEvent: Unknown", NewKeyReleased(Key(999), ModNone).String())
	assert.Equal(t, "WindowCloseEvent", NewWindowClose().String())
}
