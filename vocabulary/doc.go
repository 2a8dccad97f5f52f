// Package vocabulary provides the well-known semantic web IRIs and the
// standard namespace prefix table used across the system.
//
// Internal code always works with absolute IRIs; prefixed names
// (rdf:type, xsd:integer, :Paper) exist only at boundaries such as
// query text, serialized files, and LLM collaborator output, and are
// expanded on the way in. Keeping the constants here means every
// package spells rdf:type the same way, and the serializer emits the
// same prefix declarations in the same order on every run.
package vocabulary
