// Package courier contains the Courier aggregate and its StoragePlace entities.
//
// A courier walks the grid at a fixed speed and carries orders in storage places.
// Each storage place holds at most one order whose volume fits its capacity.
// Every courier starts with a default bag and can be given more places.
//
// Movement is tick based: Move covers at most Speed cells per call, spending the
// budget on the x axis before the y axis, and never overshoots its target.
package courier
