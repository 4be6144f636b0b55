// Package utils provides loose type conversion helpers.
//
// The dashboard application receives its positional arguments untyped and
// uses ToString and ToInt to interpret them.
package utils
