// Package plotspec composes render-ready chart specifications from the
// pipeline's stage outputs.
//
// Nothing is rendered in-process. Each Spec carries its data inline
// together with axis, facet, and annotation metadata, and the whole set
// is persisted as one JSON document for an external renderer. The
// Builder is immutable; chain With calls and finish with Build.
package plotspec
