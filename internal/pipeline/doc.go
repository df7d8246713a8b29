// Package pipeline runs the analysis sequence: segment extraction,
// preprocessing, sliding-window feature extraction, and whole-segment
// summary quantities. Execution is strictly sequential; the first error
// aborts the run with no partial results.
package pipeline
