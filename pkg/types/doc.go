// Package types defines the Pantry and Table interfaces, entity types,
// and standard error values for the pantry storage system.
package types
