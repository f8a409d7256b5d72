// Package recording captures renderer calls as commands.
//
// A Recorder is a render.Renderer that stores every call it receives
// instead of drawing. The resulting Recording can be inspected, written as
// a plain-text trace or replayed onto any other renderer.
//
// # Basic Usage
//
//	rec := recording.NewRecorder()
//	d.Render(rec, nil)
//	r := rec.FinishRecording()
//
//	// Replay onto a real backend
//	r.Playback(svgExporter)
//
//	// Or dump it
//	r.WriteTo(os.Stdout)
//
// Recorders are useful in tests, where they show exactly which primitives
// an object or a display emitted, and for the "trace" export format.
package recording
