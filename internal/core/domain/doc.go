// Package domain contains the core entities and error taxonomy for notedex.
// It has no dependencies on adapters or infrastructure.
package domain
