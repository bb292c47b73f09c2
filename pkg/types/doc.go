// Package types defines the entity types, form inputs, configuration, and
// standard errors for the room-organizer storage core.
package types
