// Package config defines the YAML configuration of the registry service and
// loads it from any storage location supported by viant/afs.
package config
