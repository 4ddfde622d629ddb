package windowing

// Config is the content descriptor a collaborator supplies when
// creating a window. Each variant validates the fields it needs in
// Create and fails with CreationError when required ones are missing.
type Config struct {
	Title string
	Text  string

	Items  []Item
	Fields []Field

	// Geometry in screen pixels. Zero values pick per-variant defaults.
	X      int
	Y      int
	Width  int
	Height int

	Modal    bool
	Poolable bool

	// PoolKey optionally partitions the free list within a kind, for
	// variants whose reset cost depends on their content shape.
	PoolKey string

	// Parent is the id of an already registered window. Destroying the
	// parent destroys this window first.
	Parent string

	Handler MessageHandler
}

// Item describes one interactive entry of a menu, list, or battle
// action row.
type Item struct {
	ID       string
	Label    string
	Disabled bool
	SubKind  string
}

// Field describes one input field of a form window.
type Field struct {
	ID       string
	Label    string
	Value    string
	Required bool
}
