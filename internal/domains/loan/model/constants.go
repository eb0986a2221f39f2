package model

// Loan statuses
const (
	StatusBorrowed = "Emprunté"
	StatusReturned = "Retourné"
	StatusOverdue  = "En retard"
)

// Statuses is the closed set accepted by validation
var Statuses = []string{StatusBorrowed, StatusReturned, StatusOverdue}

// transitions lists the statuses reachable from each status. Returned is
// terminal.
var transitions = map[string][]string{
	StatusBorrowed: {StatusReturned, StatusOverdue},
	StatusOverdue:  {StatusReturned, StatusBorrowed},
}

// CanTransition reports whether a loan may move from one status to another.
// Keeping the same status is always allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
