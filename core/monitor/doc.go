// Package monitor holds the settings of the watched simulation run: the
// directory shown by default and how often it is rescanned.
package monitor
