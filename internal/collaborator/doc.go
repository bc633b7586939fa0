// Package collaborator is the thin external-collaborator demo described by
// the runtime's domain stack: an HTTP+WebSocket "live dashboard" that
// constructs reactive sources, reads them inside effects, and writes to them
// in response to requests — exercising pkg/reactive the way a real router or
// DOM layer would, without reimplementing either.
package collaborator
