// Package geom provides the 2D shape primitives used by the world model.
//
// The shape set is closed: [AABB], [Disk] and [Line] are the only variants,
// each tagged with a [ShapeKind] so renderers can dispatch without type
// switches. Every variant answers three queries in its local frame:
//
//   - Area
//   - ContainsPoint
//   - BoundingBox
//
// Boundary points are inside for every variant.
package geom
