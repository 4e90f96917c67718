// Package generation provides the interface and implementations for turning
// pasted text into flashcard proposals. It is the seam between the
// application and whatever produces proposals: the shipped implementation
// derives them from superficial text statistics, and a model-backed
// implementation can be substituted without touching callers.
package generation
