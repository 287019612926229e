// Package config loads typed configuration structs from environment
// variables, with optional .env support for local development. Each config
// type is parsed once per process and cached, so packages can load their
// own configuration independently without coordinating.
package config
