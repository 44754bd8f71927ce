// Package models defines the values exchanged with the detection backend
// and shared by the filter, trend, export and view packages.
//
// Decoding is tolerant where the backend is loose: nullable prediction and
// confidence decode to false and 0, and timestamps without a zone are taken
// as UTC.
package models
