// Package objects provides the showcase stores driven by the rewind
// demo: small object managers whose every mutation registers itself with
// the history framework.
//
// The stores demonstrate the host-side protocol layered on the core
// primitives: push the record and bracket the do-body with a PushScope,
// bracket the undo-body with a PopScope, and stash auxiliary state in the
// present record's mementos under "name<-Function" keys.
package objects
