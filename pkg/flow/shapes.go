package flow

// ShapeKind selects the drawing and behaviour of a KindShape node. Unknown
// values are kept verbatim and resolve to the generic descriptor.
type ShapeKind string

// Known shapes.
const (
	ShapeStart      ShapeKind = "start"
	ShapeEnd        ShapeKind = "end"
	ShapeTask       ShapeKind = "task"
	ShapeSubprocess ShapeKind = "subprocess"
	ShapeGateway    ShapeKind = "gateway"
	ShapeEvent      ShapeKind = "event"
	ShapeDocument   ShapeKind = "document"
	ShapeData       ShapeKind = "data"
	ShapeAnnotation ShapeKind = "annotation"
)

// Category groups shapes by their structural role in a process.
type Category string

// Categories.
const (
	CategoryStart      Category = "start"
	CategoryEnd        Category = "end"
	CategoryGateway    Category = "gateway"
	CategoryActivity   Category = "activity"
	CategoryEvent      Category = "event"
	CategoryArtifact   Category = "artifact"
	CategoryAnnotation Category = "annotation"
	CategoryContainer  Category = "container"
)

// Standard handle ids. Edges reference these in SourceHandle/TargetHandle.
const (
	HandleTop    = "top"
	HandleRight  = "right"
	HandleBottom = "bottom"
	HandleLeft   = "left"
)

var fourHandles = []string{HandleTop, HandleRight, HandleBottom, HandleLeft}

// Descriptor is the static behaviour attached to a shape or container kind.
type Descriptor struct {
	Category      Category
	DefaultWidth  float64
	DefaultHeight float64
	Handles       []string
}

var shapeTable = map[ShapeKind]Descriptor{
	ShapeStart:      {Category: CategoryStart, DefaultWidth: 48, DefaultHeight: 48, Handles: fourHandles},
	ShapeEnd:        {Category: CategoryEnd, DefaultWidth: 48, DefaultHeight: 48, Handles: fourHandles},
	ShapeTask:       {Category: CategoryActivity, DefaultWidth: 160, DefaultHeight: 72, Handles: fourHandles},
	ShapeSubprocess: {Category: CategoryActivity, DefaultWidth: 180, DefaultHeight: 90, Handles: fourHandles},
	ShapeGateway:    {Category: CategoryGateway, DefaultWidth: 64, DefaultHeight: 64, Handles: fourHandles},
	ShapeEvent:      {Category: CategoryEvent, DefaultWidth: 48, DefaultHeight: 48, Handles: fourHandles},
	ShapeDocument:   {Category: CategoryArtifact, DefaultWidth: 120, DefaultHeight: 80, Handles: fourHandles},
	ShapeData:       {Category: CategoryArtifact, DefaultWidth: 120, DefaultHeight: 80, Handles: fourHandles},
	ShapeAnnotation: {Category: CategoryAnnotation, DefaultWidth: 160, DefaultHeight: 60, Handles: []string{HandleLeft}},
}

var containerTable = map[NodeKind]Descriptor{
	KindPool:  {Category: CategoryContainer, DefaultWidth: 960, DefaultHeight: 320},
	KindLane:  {Category: CategoryContainer, DefaultWidth: 920, DefaultHeight: 160},
	KindGroup: {Category: CategoryContainer, DefaultWidth: 320, DefaultHeight: 200},
}

// genericShape is used for unknown or empty shape kinds.
var genericShape = Descriptor{Category: CategoryActivity, DefaultWidth: 160, DefaultHeight: 72, Handles: fourHandles}

// Describe returns the descriptor for a node kind and shape.
func Describe(kind NodeKind, shape ShapeKind) Descriptor {
	if d, ok := containerTable[kind.Normalize()]; ok {
		return d
	}
	if d, ok := shapeTable[shape]; ok {
		return d
	}
	return genericShape
}

// KnownShape reports whether shape has its own descriptor.
func KnownShape(shape ShapeKind) bool {
	_, ok := shapeTable[shape]
	return ok
}

// HasHandle reports whether handle is a valid attachment point of d. An empty
// handle means "anywhere" and is always valid.
func (d Descriptor) HasHandle(handle string) bool {
	if handle == "" {
		return true
	}
	for _, h := range d.Handles {
		if h == handle {
			return true
		}
	}
	return false
}
