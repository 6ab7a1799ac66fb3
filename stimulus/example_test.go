package stimulus_test

import (
	"fmt"
	"time"

	"github.com/gogpu/psykit/stimulus"
	"github.com/gogpu/psykit/units"
)

func ExampleGaborStimulus_Animate() {
	ctx := units.Context{
		Window: units.PixelSize{Width: 800, Height: 600},
		Screen: units.PhysicalScreen{PixelDensity: 4, ViewingDistance: 570},
	}
	g := stimulus.NewGabor(units.Px(0), units.Px(0), units.Degrees(2), units.Degrees(0.5), units.Degrees(0.5))

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = g.Animate(stimulus.ParamPhase, stimulus.FloatValue(360), time.Second,
		stimulus.WithStart(start), stimulus.WithEasing(stimulus.EaseInOut))

	for _, ms := range []int{0, 500, 1500} {
		g.UpdateAnimations(start.Add(time.Duration(ms)*time.Millisecond), ctx)
		phase, _ := g.Param(stimulus.ParamPhase)
		fmt.Println(ms, phase)
	}
	// Output:
	// 0 0
	// 500 180
	// 1500 360
}

func ExampleParseParam() {
	p, err := stimulus.ParseParam("cycle_length")
	fmt.Println(p == stimulus.ParamCycleLength, p, err)
	// Output: true cycle_length <nil>
}
