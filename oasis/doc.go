// Package oasis extracts OASIS-E1 documentation elements from a
// visit transcript.
//
// A [Registry] holds the ordered element catalogue (embedded from
// elements.yaml). A [Pipeline] walks it in order and asks the [Extractor]
// for each element, passing only the resolved outputs of the element's
// declared dependencies as context. Every element ends in one of four
// outcomes: resolved, insufficient, parse_failed or collaborator_failed.
// A failing element never stops the run.
package oasis
