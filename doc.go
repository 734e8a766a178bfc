// Package starter is an authentication-starter backend core. It sits between
// an external authentication engine and the HTTP surface, and owns two
// subsystems the engine does not:
//
// Lifecycle normalization:
//   - Every mutating call into the engine produces a LifecycleEvent whose raw
//     result the Normalizer rewrites into one uniform Envelope: engine error
//     codes map to HTTP status codes through a fixed table, success payloads
//     gain per-route copy, and unclassifiable results degrade to a generic
//     400 instead of crashing the request pipeline.
//
// Transactional notifications:
//   - Bindings attach to six named lifecycle moments (sign up, email
//     verification, OTP, two-factor, password reset request and completion)
//     and dispatch templated HTML email through the mailer package. Dispatch
//     is synchronous: the engine step that requested a notification fails if
//     the send fails.
//
// Supporting infrastructure covers bun-backed persistence for users,
// sessions, accounts, and verification tokens, a bearer session resolver for
// guarded routes, and fiber glue that mounts everything on an app.
package starter
