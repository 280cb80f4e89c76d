// Package types defines the Store and table interfaces, the domain entities
// (events, participations, profiles), the sync queue item, and the standard
// errors shared by the offline storage and synchronization components.
package types
