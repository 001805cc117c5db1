// Package host routes param files to the randl documents that edit them.
//
// A host, such as a mod loader, calls [Registry.Handle] with the hash40 of
// each file it is about to load. The registry decodes the file, applies
// every entry whose target names hash to that value, and returns the
// re-encoded file. Files no entry targets are left to the caller.
//
// The registry is built once, from documents found on a search path
// described by [Config], and passed to whatever serves file requests.
package host
