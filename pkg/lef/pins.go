package lef

import (
	"strings"

	"github.com/layoutkit/rect2lef/pkg/layout"
)

// Pin directions and uses as written to LEF.
const (
	DirectionInput  = "INPUT"
	DirectionOutput = "OUTPUT"
	DirectionInout  = "INOUT"

	UseSignal = "SIGNAL"
	UsePower  = "POWER"
	UseGround = "GROUND"
)

// PinClass is the LEF classification of one pin.
type PinClass struct {
	Direction string
	Use       string
	Abutment  bool // emit SHAPE ABUTMENT
}

// pinRule matches a label containing any of substrs.
type pinRule struct {
	substrs  []string
	use      string
	abutment bool // only honoured for standard cells
}

// pinRules are evaluated top to bottom and the first match wins, so body
// supplies such as "vddb" never fall through to the plain "vdd" rule.
var pinRules = []pinRule{
	{substrs: []string{"vnsub", "vpsub", "vddsub", "vsssub", "vddb", "vssb"}, use: UsePower},
	{substrs: []string{"vdd", "pwr"}, use: UsePower, abutment: true},
	{substrs: []string{"gnd", "vss"}, use: UseGround, abutment: true},
}

func (r pinRule) matches(label string) bool {
	for _, s := range r.substrs {
		if strings.Contains(label, s) {
			return true
		}
	}
	return false
}

// Classify returns the LEF direction, use and shape of pin r in a macro of
// the given kind.
func Classify(r layout.Rect, kind layout.Kind) PinClass {
	label := strings.ToLower(r.Label)
	for _, rule := range pinRules {
		if rule.matches(label) {
			return PinClass{
				Direction: DirectionInout,
				Use:       rule.use,
				Abutment:  rule.abutment && kind.IsStdCell(),
			}
		}
	}
	return PinClass{Direction: signalDirection(r), Use: UseSignal}
}

func signalDirection(r layout.Rect) string {
	switch {
	case r.IsInput && r.IsOutput:
		return DirectionInout
	case r.IsOutput:
		return DirectionOutput
	default:
		return DirectionInput
	}
}
