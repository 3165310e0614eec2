// Package cacheengine adapts a memcached server to the small capability set a
// cache orchestrator expects from a storage engine: Start, Stop, IsReady,
// ValidateNamespace, Get, Set and Drop.
//
// Components:
//   - Settings: Options merged over defaults (127.0.0.1:11211, 1s timeout/idle).
//   - Provider: the transport handle (memcached by default, see provider/).
//   - Codec: serializes envelopes (JSON by default, see codec/).
//   - Hooks/Logger: optional observation of lifecycle and failures.
//
// Keys:
//
//	<segment>:<id>              - no partition
//	<partition>:<segment>:<id>  - every component percent-encoded
//
// Envelope (JSON codec):
//
//	{"item": <value>, "stored": <unix ms>, "ttl": <ms>}
//
// Usage:
//
//	eng, err := cacheengine.New(cacheengine.Options{Partition: "app"})
//	if err != nil { ... }
//	if err := eng.Start(ctx); err != nil { ... }
//	defer eng.Stop(ctx)
//
//	k := cacheengine.Key{Segment: "users", ID: "42"}
//	_ = eng.Set(ctx, k, user, 10*time.Second)
//	env, err := eng.Get(ctx, k) // env == nil on a miss
//
// Expiry is the server's job: the engine never compares stored+ttl with the
// clock. Nothing is retried and nothing is logged on the error path; errors go
// straight back to the caller.
package cacheengine
