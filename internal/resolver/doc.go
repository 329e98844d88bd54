// Package resolver computes the dependency closure for a build: which
// feature flags are active, which optional dependencies they pull in, and
// how toolchain-conditional blocks modify the baseline set.
//
// Resolution is a single-pass, deterministic computation over the manifest
// model. It has no side effects; the caller decides what to do with the
// resulting lock.
package resolver
