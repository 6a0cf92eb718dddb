// Package services contains the core business logic: the index lifecycle
// manager and the query engine. Services depend only on domain types and
// port interfaces.
package services
