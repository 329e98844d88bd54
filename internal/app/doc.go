// Package app wires the resolver together: it owns the application
// lifecycle, from logger construction through manifest loading, resolution,
// lock output, and the optional watch loop.
package app
