// Package store owns every row the collector writes: channels, users, the
// append-only username rename log, resubs, and messages.
//
// All helpers run against any DBTX (pool, single pooled connection, or open
// transaction) so an event handler can bind its whole unit of work to the one
// connection it borrowed. ReconcileUsername is the only helper that opens its
// own transaction; the rename-log append and the username update must land
// together.
//
// Lookups by external Twitch id return (nil, nil) on a miss; a missing row is
// not an error.
package store
