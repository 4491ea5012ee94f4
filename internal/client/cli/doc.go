// Package cli provides the interactive PIR editor command-line client.
//
// It wires configuration, the sheet store gateway, the positional
// collection controllers and an interactive REPL. Typical flow: prompt
// for credentials, open a document by key, then edit findings and their
// materials and save back to the store.
//
// Key features:
//   - Login against the sheet store session endpoint
//   - Master dashboard listing and status updates
//   - Finding editing: add, edit, attach images, single and batch delete
//   - Material editing per finding: add, edit, row delete, batch delete
//   - Full-replace saves followed by an authoritative reload
//   - Document generation
//
// The REPL is started via App.Root(ctx), which blocks until the user
// exits. See App and runREPL for details.
package cli
