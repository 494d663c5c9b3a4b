// Package control provides the discrete feedback controller closing the
// loop around a plant.
//
// A plant is anything exposing a scalar measurement/actuation pair:
//
//	pid := control.NewPID(plant, 1.0, 0.1, 0.01, 30.0) // Kp, Ki, Kd, setpoint
//	pid.On = true
//	// pid.Update() runs once per world tick
//
// The controller is stateful: the integral accumulator and previous error
// persist across ticks and across On/Off toggles.
package control
