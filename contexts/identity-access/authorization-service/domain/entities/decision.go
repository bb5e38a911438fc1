package entities

// DenyReason says why a request was refused.
type DenyReason string

const (
	ReasonNone            DenyReason = ""
	ReasonUnauthenticated DenyReason = "unauthenticated"
	ReasonForbiddenRole   DenyReason = "forbidden_role"
	ReasonNotOwner        DenyReason = "not_owner"
)

// Decision is the outcome of evaluating one capability for one caller.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}
