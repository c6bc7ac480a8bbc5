package domain

// SearchStatus is the lifecycle of one search job. Transitions are forward
// only; COMPLETED and FAILED are absorbing.
type SearchStatus string

const (
	SearchStatusInitial   SearchStatus = "INITIAL"
	SearchStatusOngoing   SearchStatus = "ONGOING"
	SearchStatusCompleted SearchStatus = "COMPLETED"
	SearchStatusFailed    SearchStatus = "FAILED"
)

var searchTransitions = map[SearchStatus][]SearchStatus{
	SearchStatusInitial:   {SearchStatusOngoing, SearchStatusFailed},
	SearchStatusOngoing:   {SearchStatusCompleted, SearchStatusFailed},
	SearchStatusCompleted: {},
	SearchStatusFailed:    {},
}

func (s SearchStatus) CanTransitionTo(next SearchStatus) bool {
	for _, allowed := range searchTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s SearchStatus) Terminal() bool {
	return s == SearchStatusCompleted || s == SearchStatusFailed
}

// SearchAttentionStatuses are the statuses of jobs still needing attention.
var SearchAttentionStatuses = []SearchStatus{SearchStatusInitial, SearchStatusOngoing}

// CandidateStatus is the lifecycle of one discovered recipe URL. REJECTED
// and CREATED are absorbing; CREATED is only reached together with the
// recipe rows it stands for.
type CandidateStatus string

const (
	CandidateStatusInitial       CandidateStatus = "INITIAL"
	CandidateStatusInvestigating CandidateStatus = "INVESTIGATING"
	CandidateStatusAccepted      CandidateStatus = "ACCEPTED"
	CandidateStatusRejected      CandidateStatus = "REJECTED"
	CandidateStatusCreated       CandidateStatus = "CREATED"
)

var candidateTransitions = map[CandidateStatus][]CandidateStatus{
	CandidateStatusInitial:       {CandidateStatusInvestigating},
	CandidateStatusInvestigating: {CandidateStatusAccepted, CandidateStatusRejected},
	CandidateStatusAccepted:      {CandidateStatusCreated},
	CandidateStatusRejected:      {},
	CandidateStatusCreated:       {},
}

func (s CandidateStatus) CanTransitionTo(next CandidateStatus) bool {
	for _, allowed := range candidateTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s CandidateStatus) Terminal() bool {
	return s == CandidateStatusRejected || s == CandidateStatusCreated
}

// CandidatePendingStatuses are the statuses still eligible for processing.
var CandidatePendingStatuses = []CandidateStatus{
	CandidateStatusInitial,
	CandidateStatusInvestigating,
	CandidateStatusAccepted,
}
