package buffer

const (
	// defaultRingCap is the capacity a Ring allocates on its first growth.
	defaultRingCap = 16

	// ringShrinkFloor is the capacity below which a Ring never shrinks.
	ringShrinkFloor = 1024

	// ringShrinkRatio: a Ring halves its buffer once size <= cap/ringShrinkRatio.
	ringShrinkRatio = 4
)
