// Package lightscale maps a requested light intensity to a hardware output value.
//
// Gamma correction is approximated with a handful of linear segments computed once
// at construction time. Evaluation uses integer fixed-point arithmetic only, which
// keeps it cheap on microcontrollers without a floating point unit while avoiding
// the coarse low-end steps of an 8-bit lookup table.
//
// Eight segments cover an 8-bit input range with gamma correction, and a linear
// mapping needs a single segment.
package lightscale
