// Package body integrates the motion of a discretized rigid body.
//
// A [State] holds the point cloud, mass, inertia tensor, centre of mass,
// velocity, orientation angles and angular velocity of the body. An
// [Integrator] advances a state by one fixed timestep under a set of
// [Loads] using semi-implicit Euler: velocities are updated first and the
// new velocities move the position and the angles.
//
// Orientation is a raw angle vector integrated per axis, not a rotation
// matrix or quaternion. Each step rebuilds the rotation Rz·Ry·Rx from the
// accumulated angles with series sine and cosine and applies it to the
// cloud about the new centre. The cloud itself is not shifted by the
// translation, so after a few steps its mean and the tracked centre differ.
//
// # Example
//
//	integ := body.New(body.WithTerms(12))
//	snaps, err := integ.Trace(state, loads, 1.0, 100)
//
// # Thread Safety
//
// An Integrator holds configuration only and may be shared. States are
// values; Step never modifies its input.
package body
