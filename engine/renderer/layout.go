package renderer

// DataType is a shader-visible attribute type.
type DataType int

const (
	Float DataType = iota + 1
	Float2
	Float3
	Float4
	Int
)

// Size in bytes.
func (t DataType) Size() int { return 4 * t.ComponentCount() }

func (t DataType) ComponentCount() int {
	switch t {
	case Float, Int:
		return 1
	case Float2:
		return 2
	case Float3:
		return 3
	case Float4:
		return 4
	}
	return 0
}

// BufferElement is one attribute inside an interleaved vertex.
type BufferElement struct {
	Name       string
	Type       DataType
	Normalized bool
	Offset     int
}

// BufferLayout describes an interleaved vertex; offsets and stride are computed
// by NewBufferLayout.
type BufferLayout struct {
	Elements []BufferElement
	Stride   int
}

func NewBufferLayout(elems ...BufferElement) BufferLayout {
	l := BufferLayout{Elements: elems}
	offset := 0
	for i := range l.Elements {
		l.Elements[i].Offset = offset
		offset += l.Elements[i].Type.Size()
	}
	l.Stride = offset
	return l
}
