package constants

const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentFailed  = "failed"

	SubscriptionFree    = "free"
	SubscriptionBasic   = "basic"
	SubscriptionPremium = "premium"
)

// ValidPaymentStatuses is the set of allowed listing payment states.
var ValidPaymentStatuses = []string{PaymentPaid, PaymentPending, PaymentFailed}

// ValidSubscriptionTypes is the set of allowed listing subscription tiers.
var ValidSubscriptionTypes = []string{SubscriptionFree, SubscriptionBasic, SubscriptionPremium}

// IsValidPaymentStatus returns true if s is one of ValidPaymentStatuses.
func IsValidPaymentStatus(s string) bool {
	return contains(ValidPaymentStatuses, s)
}

// IsValidSubscriptionType returns true if s is one of ValidSubscriptionTypes.
func IsValidSubscriptionType(s string) bool {
	return contains(ValidSubscriptionTypes, s)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
