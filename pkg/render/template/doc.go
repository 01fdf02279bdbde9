// Package template defines the renderer seam used to turn named templates and
// inline template strings into markup. Enhancement scripts and the demo server
// pages are produced through this contract so the engine can be swapped.
package template
