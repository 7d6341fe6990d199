package component

// RenderLayer sorts draw order deterministically; lower draws first.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[*RenderLayer]("render_layer")
