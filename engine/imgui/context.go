package imgui

import (
	"fmt"
	"image"
	"image/draw"
	"slices"

	"github.com/hubastard/gamelamp/engine/colors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Input is the mouse state the widgets see for one frame. Pressed and
// Released are edges: true only in the frame right after the transition.
type Input struct {
	MouseX, MouseY float32
	MouseDown      bool
	MousePressed   bool
	MouseReleased  bool
}

// Theme
var (
	PanelBg   = colors.Black.WithAlpha(0.6)
	TitleBg   = colors.Color{0.16, 0.29, 0.48, 0.9}
	TextColor = colors.White
	ButtonBg  = colors.Color{0.26, 0.59, 0.98, 0.4}
	CheckMark = colors.Color{0.26, 0.59, 0.98, 1}
	RuleColor = colors.Gray.WithAlpha(0.5)
)

const (
	margin    = 10 // screen edge and gap between panels
	padding   = 6
	spacing   = 4
	boxSize   = 11 // checkbox square
	minPanelW = 120
)

type cmdKind uint8

const (
	cmdRect cmdKind = iota
	cmdText
)

// cmd is one deferred draw. Two frames with equal command lists rasterize
// to the same pixels.
type cmd struct {
	kind  cmdKind
	rect  image.Rectangle
	text  string
	color colors.Color
}

type widgetState struct {
	hot    bool
	active bool // mouse went down inside and has not been released
}

type panel struct {
	title  string
	bg     int // index of the background cmd, sized at close
	origin image.Point
	cursor image.Point
	width  int
}

// Context records widgets between NewFrame and EndFrame, hit-tests them
// against Input, and rasterizes the resulting panels. It has no GPU state.
type Context struct {
	face   font.Face
	ascent int
	lineH  int

	in    Input
	cmds  []cmd
	state map[string]widgetState

	cur    *panel
	nextY  int
	panels []image.Rectangle // closed panels of the current frame
	last   []image.Rectangle // panels of the previous frame, for WantsMouse
	open   bool
}

func NewContext() *Context {
	face := basicfont.Face7x13
	m := face.Metrics()
	return &Context{
		face:   face,
		ascent: m.Ascent.Ceil(),
		lineH:  m.Height.Ceil(),
		state:  make(map[string]widgetState, 64),
	}
}

// NewFrame resets the command list. Widget state survives across frames.
func (c *Context) NewFrame(in Input) {
	if c.open {
		panic("imgui: NewFrame called twice without EndFrame")
	}
	c.open = true
	c.in = in
	c.cmds = c.cmds[:0]
	c.panels = c.panels[:0]
	c.cur = nil
	c.nextY = margin
}

// EndFrame closes the last panel and returns the bounding box of everything
// drawn this frame (empty when nothing was).
func (c *Context) EndFrame() image.Rectangle {
	if !c.open {
		panic("imgui: EndFrame without NewFrame")
	}
	c.closePanel()
	c.open = false
	c.last = append(c.last[:0], c.panels...)
	return c.Bounds()
}

// Bounds of the panels of the last finished (or current) frame.
func (c *Context) Bounds() image.Rectangle {
	var r image.Rectangle
	for _, p := range c.panels {
		r = r.Union(p)
	}
	return r
}

// WantsMouse reports whether (x, y) lies on a panel drawn last frame.
func (c *Context) WantsMouse(x, y float32) bool {
	pt := image.Pt(int(x), int(y))
	for _, r := range c.last {
		if pt.In(r) {
			return true
		}
	}
	return false
}

// Panel starts a titled panel below the previous one. Widgets go into the
// current panel; calling a widget before any Panel opens a "Debug" panel.
func (c *Context) Panel(title string) {
	c.mustBeOpen()
	c.closePanel()
	p := &panel{title: title, origin: image.Pt(margin, c.nextY)}
	p.bg = c.emit(cmd{kind: cmdRect, color: PanelBg})

	titleW := c.measure(title) + 2*padding
	c.emit(cmd{
		kind:  cmdRect,
		rect:  image.Rect(p.origin.X, p.origin.Y, p.origin.X+titleW, p.origin.Y+c.lineH+2*padding),
		color: TitleBg,
	})
	c.emit(cmd{kind: cmdText, rect: c.textRect(p.origin.Add(image.Pt(padding, padding)), title), text: title, color: TextColor})
	p.width = max(titleW, minPanelW)
	p.cursor = p.origin.Add(image.Pt(padding, c.lineH+3*padding))
	c.cur = p
}

// Text adds a line of formatted text.
func (c *Context) Text(format string, args ...any) {
	p := c.panel()
	s := format
	if len(args) > 0 {
		s = fmt.Sprintf(format, args...)
	}
	r := c.textRect(p.cursor, s)
	c.emit(cmd{kind: cmdText, rect: r, text: s, color: TextColor})
	c.advance(r)
}

// Button draws a clickable label and reports whether it was clicked: the
// mouse went down and came back up on it.
func (c *Context) Button(label string) bool {
	p := c.panel()
	r := image.Rect(p.cursor.X, p.cursor.Y, p.cursor.X+c.measure(label)+2*padding, p.cursor.Y+c.lineH+2*padding)
	clicked, st := c.interact(p.title+"/"+label, r)

	bg := ButtonBg
	if st.active {
		bg = bg.Scale(0.85).WithAlpha(1)
	} else if st.hot {
		bg = bg.WithAlpha(0.8)
	}
	c.emit(cmd{kind: cmdRect, rect: r, color: bg})
	c.emit(cmd{kind: cmdText, rect: c.textRect(r.Min.Add(image.Pt(padding, padding)), label), text: label, color: TextColor})
	c.advance(r)
	return clicked
}

// Checkbox toggles *v when clicked and reports whether it changed.
func (c *Context) Checkbox(label string, v *bool) bool {
	p := c.panel()
	box := image.Rect(p.cursor.X, p.cursor.Y+1, p.cursor.X+boxSize, p.cursor.Y+1+boxSize)
	text := c.textRect(image.Pt(box.Max.X+spacing, p.cursor.Y), label)
	r := box.Union(text)

	clicked, st := c.interact(p.title+"/"+label, r)
	if clicked {
		*v = !*v
	}

	bg := ButtonBg
	if st.hot {
		bg = bg.WithAlpha(0.8)
	}
	c.emit(cmd{kind: cmdRect, rect: box, color: bg})
	if *v {
		c.emit(cmd{kind: cmdRect, rect: box.Inset(3), color: CheckMark})
	}
	c.emit(cmd{kind: cmdText, rect: text, text: label, color: TextColor})
	c.advance(r)
	return clicked
}

// Separator draws a horizontal rule across the panel.
func (c *Context) Separator() {
	p := c.panel()
	r := image.Rect(p.cursor.X, p.cursor.Y+spacing, p.cursor.X+minPanelW-2*padding, p.cursor.Y+spacing+1)
	c.emit(cmd{kind: cmdRect, rect: r, color: RuleColor})
	c.advance(image.Rect(r.Min.X, r.Min.Y, r.Min.X, r.Max.Y+spacing))
}

// Render rasterizes the frame's commands into dst. dst's origin maps to
// screen position origin.
func (c *Context) Render(dst draw.Image, origin image.Point) {
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	for _, cm := range c.cmds {
		r := cm.rect.Sub(origin)
		switch cm.kind {
		case cmdRect:
			draw.Draw(dst, r, image.NewUniform(cm.color.NRGBA()), image.Point{}, draw.Over)
		case cmdText:
			d := font.Drawer{
				Dst:  dst,
				Src:  image.NewUniform(cm.color.NRGBA()),
				Face: c.face,
				Dot:  fixed.P(r.Min.X, r.Min.Y+c.ascent),
			}
			d.DrawString(cm.text)
		}
	}
}

// Find reports where text was drawn in the last frame.
func (c *Context) Find(text string) (image.Rectangle, bool) {
	for _, cm := range c.cmds {
		if cm.kind == cmdText && cm.text == text {
			return cm.rect, true
		}
	}
	return image.Rectangle{}, false
}

// sameAs reports whether the recorded commands equal prev.
func (c *Context) sameAs(prev []cmd) bool { return slices.Equal(c.cmds, prev) }

// interact runs the hot/active state machine for one widget.
func (c *Context) interact(id string, r image.Rectangle) (clicked bool, st widgetState) {
	st = c.state[id]
	hot := image.Pt(int(c.in.MouseX), int(c.in.MouseY)).In(r)
	if c.in.MousePressed && hot {
		st.active = true
	}
	if c.in.MouseReleased {
		clicked = st.active && hot
		st.active = false
	}
	st.hot = hot
	c.state[id] = st
	return clicked, st
}

func (c *Context) emit(cm cmd) int {
	c.cmds = append(c.cmds, cm)
	return len(c.cmds) - 1
}

func (c *Context) mustBeOpen() {
	if !c.open {
		panic("imgui: widget outside NewFrame/EndFrame")
	}
}

func (c *Context) panel() *panel {
	c.mustBeOpen()
	if c.cur == nil {
		c.Panel("Debug")
	}
	return c.cur
}

func (c *Context) closePanel() {
	p := c.cur
	if p == nil {
		return
	}
	r := image.Rect(p.origin.X, p.origin.Y, p.origin.X+p.width, p.cursor.Y+padding-spacing)
	c.cmds[p.bg].rect = r
	c.panels = append(c.panels, r)
	c.nextY = r.Max.Y + margin
	c.cur = nil
}

// advance moves the cursor below r and widens the panel to fit it.
func (c *Context) advance(r image.Rectangle) {
	p := c.cur
	p.width = max(p.width, r.Max.X-p.origin.X+padding)
	p.cursor.Y = r.Max.Y + spacing
}

func (c *Context) measure(s string) int { return font.MeasureString(c.face, s).Ceil() }

func (c *Context) textRect(at image.Point, s string) image.Rectangle {
	return image.Rect(at.X, at.Y, at.X+c.measure(s), at.Y+c.lineH)
}
