package scene

import "fmt"

// BlendMode selects how source pixels combine with the destination.
// Porter-Duff operators act on premultiplied colors.
type BlendMode uint8

// Blend modes.
const (
	SourceOver BlendMode = iota
	DestinationOver
	SourceIn
	DestinationIn
	SourceOut
	DestinationOut
	SourceAtop
	DestinationAtop
	Lighter
	Copy
	Xor
	Multiply
	Modulate
)

var blendNames = [...]string{
	SourceOver:      "SourceOver",
	DestinationOver: "DestinationOver",
	SourceIn:        "SourceIn",
	DestinationIn:   "DestinationIn",
	SourceOut:       "SourceOut",
	DestinationOut:  "DestinationOut",
	SourceAtop:      "SourceAtop",
	DestinationAtop: "DestinationAtop",
	Lighter:         "Lighter",
	Copy:            "Copy",
	Xor:             "Xor",
	Multiply:        "Multiply",
	Modulate:        "Modulate",
}

// String returns the mode name.
func (m BlendMode) String() string {
	if int(m) < len(blendNames) {
		return blendNames[m]
	}
	return fmt.Sprintf("BlendMode(%d)", uint8(m))
}

// BlendModes returns all blend modes in declaration order.
func BlendModes() []BlendMode {
	modes := make([]BlendMode, len(blendNames))
	for i := range modes {
		modes[i] = BlendMode(i)
	}
	return modes
}
