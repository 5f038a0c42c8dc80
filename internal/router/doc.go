// Package router implements the request router: it reads the availability
// snapshot, picks one eligible provider (caller override or selection
// strategy over the available set) and forwards a single inference request
// to it. No automatic retry across providers; callers re-invoke Route for
// retry semantics.
package router
