// Package bootstrap drives the single-run image customization inside
// the build VM.
//
// The run is a short sequential state machine: wait for the
// script-runner tooling, download and execute the customization
// bundle, scrub transient credentials and scripts, then power the
// machine off after a drain delay. Stage failures are reported through
// BuildSucceeded:/BuildFailed: serial-console markers that the outer
// build workflow greps for; no stage failure can stop the run short of
// shutdown.
package bootstrap
