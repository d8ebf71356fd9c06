// Package file provides the TOML file implementation of driven.ConfigStore.
//
// Keys use dot notation and are stored as TOML tables, so "embedding.model"
// is written as model under [embedding]. Environment variables named
// PETMATCH_<KEY> (dots become underscores) override file values on read.
package file
