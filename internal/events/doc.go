// Package events publishes changes to the user collection to interested
// components without coupling them to the repository.
//
// The primary components are:
// - UserEvent: a committed create, update or delete of one user
// - EventHandler: interface for components that react to events
// - EventEmitter: interface for components that publish events
package events
