// Package config holds the bootstrap runtime settings.
//
// The [Settings] struct carries everything the orchestrator needs that
// does not come from the metadata service: endpoints, retry bounds,
// local paths, and the readiness-gate tool. Values are loaded from
// environment variables with sane defaults and may be overlaid from an
// optional YAML file baked into the image by the build workflow.
package config
