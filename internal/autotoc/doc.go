// Package autotoc drafts a table-of-contents manifest from the layout of a
// content directory.
//
// The alphanumeric order of files and folders decides chapter order, so
// authors usually prefix names with numbers ("01_intro.md", "02_data/").
// Top-level files become top-level entries; every immediate subdirectory that
// holds at least one document becomes a header followed by all documents
// found beneath it. The result is a starting point for a human to review,
// not a finished manifest.
package autotoc
