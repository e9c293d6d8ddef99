// Package chat contains the ingestion pipeline: the Twitch IRC feed, event
// classification, channel onboarding, and the dispatcher that turns feed
// events into database rows.
//
// The Collector is the entrypoint. Run onboards every configured channel
// (Helix login lookup, local channel row, IRC join), then streams: the
// dispatcher pulls events off the feed in delivery order and spawns one
// short-lived handler goroutine per event, each bound to a single pooled
// database connection for its whole unit of work. The pool is the only
// admission control; when no connection can be acquired in time the event is
// dropped and logged, and consumption continues.
//
// There is no reconnect logic. Feed termination, for any reason, ends Run
// with an error; restarting is the supervisor's job.
package chat
