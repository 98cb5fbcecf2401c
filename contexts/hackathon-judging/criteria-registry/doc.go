// Package criteriaregistry implements the Criteria Registry inside the
// hackathon-judging context.
//
// The module owns the ordered, weighted scoring dimensions of an event:
// first read seeds the default criterion set idempotently, later reads
// return the stored rows in display order. Business rules live in the
// application/domain layers and infrastructure stays behind ports and
// adapters.
package criteriaregistry
