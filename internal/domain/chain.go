package domain

// ChainBlock is one step of a predefined ordered study plan. The block
// sequence is fixed at session-start time; changing the plan means
// starting a new session.
type ChainBlock struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Minutes  int    `json:"minutes,omitempty"`
}

// BlockProgress is the backend's answer to an advance request. Index is
// authoritative: the client adopts it verbatim, never computes its own.
type BlockProgress struct {
	Index    int  `json:"index"`
	Complete bool `json:"complete"`
}
