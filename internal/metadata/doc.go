// Package metadata extracts sharing metadata from external web pages and from the
// site's own layout configuration.
//
// Extraction works on raw text with ordered regular-expression rules grouped into
// immutable profiles (ExternalHTMLProfile, LocalConfigProfile). The Assembler drives
// a single request end to end: resolve the target, fetch or read the text, run the
// profile, absolutize reference fields and fill defaults. Every request is
// independent; the only shared state is the read-only profiles and Defaults.
package metadata
