// Package cli wires the revq commands: the owned, incoming and merged
// query views, configuration management, and the flag surface controlling
// the abandon policy and output formats.
package cli
