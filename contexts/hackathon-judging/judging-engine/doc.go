// Package judgingengine implements the judging engine inside the
// hackathon-judging context.
//
// The module owns rating capture (one score+notes per submission, judge and
// criterion with upsert semantics) and the pull-based aggregation reads on
// top of it: per-submission score computation, deterministic event ranking
// with weighted tie resolution, and tie-group detection. It keeps business
// rules in application/domain layers and isolates infrastructure concerns
// behind ports and adapters.
package judgingengine
