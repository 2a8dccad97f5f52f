// Package enrich fills ontology gaps with data from an external
// bibliographic catalog.
//
// A Handler implements one entity kind's enrichment cycle: identify an
// actionable target in the gap analysis, fetch matching records from
// the catalog, and turn them into a triple batch. The Dispatcher picks
// handlers from lexical triggers in the user's query, runs each chosen
// handler, and forwards every batch to the validation gateway. It
// never mutates the graph directly, and a failing handler is a logged
// no-op rather than an abort.
//
// Every enriched subject carries provenance: a prov:addedBy literal
// naming the handler and a prov:source link to the catalog record.
package enrich
