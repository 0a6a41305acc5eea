// Package registry provides a generic, thread-safe registry for named
// components such as inline decorators.
package registry
