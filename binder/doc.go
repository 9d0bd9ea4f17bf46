// Package binder decodes HTTP request bodies into typed request structs for
// use with handler.Wrap.
package binder
