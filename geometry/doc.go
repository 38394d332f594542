// Package geometry projects augmented-matrix rows onto renderable shapes.
//
// A three-variable row [a, b, c, d] becomes the plane a·x + b·y + c·z = d;
// a two-variable row [a, b, d] becomes the line a·x + b·y = d. The two paths
// are never mixed: Project dispatches on the variable count.
//
// Besides per-row parameters the package computes the point of a plane
// nearest the origin, the rotation that carries (0,0,1) onto a plane normal,
// and intersection points of three planes or two lines via Cramer's rule.
// All functions are pure; renderers own interpolation between states.
package geometry
