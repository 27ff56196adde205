package slot_test

// Common test element types
type Sprite struct {
	Name  string
	X, Y  float32
	Layer int
}

type Counter struct {
	Hits int
}
