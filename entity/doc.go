// Package entity defines the rows of the tiny-orders marketplace schema together with
// the table naming scheme and the constructors that synthesize fake rows for the
// prepare and run phases.
//
// The schema consists of five tables:
//
//	commodity   sellable item with a price in integer units
//	consumer    buyer
//	inventory   stock level of one commodity (1:1 with commodity)
//	order       append-only sale record with a snapshot of the unit price
//	evaluation  append-only free-text review of a commodity by a consumer
package entity
