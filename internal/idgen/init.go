package idgen

import "log"

// Init registers the nodes used by the service. Ledger entries, payout
// batches and portal records draw from separate sequences so hot ledger
// writes never starve the low-volume id consumers.
func Init(nodeID int64) {
	if err := InitNode("default", nodeID); err != nil {
		log.Fatalf("idgen init failed: %v", err)
	}
	if err := InitNode("ledger", nodeID+1); err != nil {
		log.Fatalf("idgen ledger init failed: %v", err)
	}
	if err := InitNode("payout", nodeID+2); err != nil {
		log.Fatalf("idgen payout init failed: %v", err)
	}
}
