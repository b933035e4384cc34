// Package gauge draws a semicircular utilization dial.
//
// Draw maps a percentage and a title onto a fixed sequence of drawing
// primitives over the square extent [-1.5, 1.5] x [-1.5, 1.5]: a filled
// upper half-disc, a translucent halo, the value and title text, a needle
// whose angle is proportional to the value, and five fixed ticks at 0, 25,
// 50, 75 and 100 percent.
//
// The primitives are issued against a Canvas. Recorder keeps them as a
// display list; BrailleCanvas rasterizes them into terminal rows using
// Unicode braille cells (2x4 dots per cell).
//
// Values are never validated or clamped. A value above 100 (a per-core CPU
// sum on a multi-core host, say) swings the needle past the left edge of the
// dial into the lower half-plane, and a negative value swings it below the
// right edge.
package gauge
