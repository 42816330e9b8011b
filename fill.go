package bento

// Fill draws a solid rectangle. With no Dimension it covers the viewport
// size from the entity origin, which suits a floating background.
type Fill struct {
	Base

	Color     Color
	Dimension *Rectangle
}

// NewFill creates a fill component.
func NewFill(c Color, dimension *Rectangle) *Fill {
	f := &Fill{Color: c, Dimension: dimension}
	f.Name = "fill"
	f.rootIndex = -1
	return f
}

func (f *Fill) Draw(data *Data) {
	r := f.Dimension
	if r == nil {
		if data.Viewport == nil {
			return
		}
		r = &Rectangle{Width: data.Viewport.Width, Height: data.Viewport.Height}
	}
	data.Renderer.FillRect(f.Color, r.X, r.Y, r.Width, r.Height)
}
