package booking

type Status string

const (
	StatusCreated   Status = "created"
	StatusPaid      Status = "paid"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Regular lifecycle. Admin overrides via SetStatus bypass this graph.
var validTransitions = map[Status][]Status{
	StatusCreated:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

func (s Status) IsTerminal() bool {
	allowed, ok := validTransitions[s]
	return !ok || len(allowed) == 0
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s Status) AllowedTransitions() []Status {
	return validTransitions[s]
}

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ValidateTransition checks a regular lifecycle step.
func ValidateTransition(current, next Status) error {
	if current.IsTerminal() {
		return ErrAlreadyFinalized
	}
	if !current.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	return nil
}

// OpenStatuses lists every non-terminal status.
func OpenStatuses() []Status {
	return []Status{StatusCreated, StatusPaid, StatusConfirmed}
}
