// Package redis provides Redis client construction with environment-driven
// configuration and startup retry. The client backs the shared tenant
// cache so resolution survives restarts of individual app instances warm.
package redis
