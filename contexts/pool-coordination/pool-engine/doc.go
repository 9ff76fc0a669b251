// Package poolengine implements the pooled-contribution fund pool inside the
// pool-coordination context.
//
// The module owns the pool lifecycle state machine: contribution accounting,
// proposal/vote bookkeeping, winner resolution, and distribution/withdrawal
// accounting. Phases are derived from the stored deadlines on every call, and
// every mutating operation validates all preconditions before touching state.
// Infrastructure concerns stay behind ports and adapters.
package poolengine
