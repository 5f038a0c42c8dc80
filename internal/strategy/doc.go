// Package strategy defines the provider selection policy interface and
// implements the shipped algorithms:
//
//   - Random: uniform choice among the eligible providers (the default)
//   - Round Robin: sequential rotation through the eligible providers
//
// Strategies only ever see the providers the router already filtered to the
// available set; they carry no availability logic of their own. The interface
// exists so tests can inject a deterministic policy.
package strategy
