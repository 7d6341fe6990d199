package component

// Transform places a shaded sprite on screen.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

// Identity returns a transform at the origin with unit scale.
func Identity() *Transform {
	return &Transform{ScaleX: 1, ScaleY: 1}
}

var TransformComponent = NewComponent[*Transform]("transform")
