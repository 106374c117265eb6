// Package d3d provides the minimal Direct3D 11, Direct2D and
// DirectComposition bindings the window host needs: device creation, the
// device-removed liveness query, and the composition target/visual tree.
package d3d
