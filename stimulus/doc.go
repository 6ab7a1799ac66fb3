// Package stimulus provides the visual stimuli drawn into window frames.
//
// Every kind (ShapeStimulus, GaborStimulus, ImageStimulus,
// PatternStimulus, TextStimulus) implements Stimulus. Positions and sizes
// are units.Size expressions evaluated against the frame context each
// time the stimulus is drawn, so a stimulus sized in degrees of visual
// angle follows changes of window size or viewing distance.
//
// Stimulus coordinates put the origin at the window center with y
// pointing down. Transformations act in these coordinates.
//
// Parameters are addressed with typed Param keys and Value variants:
//
//	g := stimulus.NewGabor(units.Px(0), units.Px(0), units.Degrees(2),
//		units.Degrees(0.5), units.Degrees(0.5))
//	g.SetParam(stimulus.ParamOrientation, stimulus.FloatValue(45))
//	g.Animate(stimulus.ParamPhase, stimulus.FloatValue(360), time.Second,
//		stimulus.WithRepeat(stimulus.Loop(10)))
//
// Stimuli are not safe for concurrent use.
package stimulus
