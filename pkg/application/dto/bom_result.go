package dto

import (
	"time"

	"github.com/vsinha/polebom/pkg/domain/entities"
)

// BOMResult contains the complete output of a batch configuration run
type BOMResult struct {
	SessionID  entities.SessionID             `json:"session_id"`
	Components []entities.ConfiguredComponent `json:"components"`
	PickList   *entities.PickList             `json:"pick_list,omitempty"`
	Rejected   []RejectedRequest              `json:"rejected,omitempty"`
	Elapsed    time.Duration                  `json:"-"`
}

// RejectedRequest records a request that could not be finalized
type RejectedRequest struct {
	Line            int    `json:"line"`
	Kind            string `json:"kind"`
	BuildIdentifier string `json:"build_identifier"`
	Error           string `json:"error"`
}

// Valid reports whether every request was accepted
func (r *BOMResult) Valid() bool {
	return len(r.Rejected) == 0
}
