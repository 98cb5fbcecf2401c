// Package winnerworkflow maps ranked submissions to prize positions and
// walks each proposal through the pending, approved and announced states.
// Approval and announcement append outbox events that the relay worker
// publishes to the bus.
package winnerworkflow
