// Package globaltoc connects a loaded TOC manifest to a build.
//
// OnConfigLoaded runs once per build and returns a Session holding the tree
// and the build's root document. The renderer then calls
// Session.OnPageSource for every page before rendering it; pages with
// children in the manifest get a toctree directive appended to their source.
//
// A Session is the only build-wide state. Separate builds use separate
// sessions and never share a tree.
package globaltoc
