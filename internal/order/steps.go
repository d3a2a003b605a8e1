package order

// Step is a state in the order-building flow. The checklist drives it: each
// forward transition is guarded by the conditions the step is responsible
// for, backward transitions are always legal.
type Step int

const (
	StepSelectingProducts Step = iota
	StepConfiguringItems
	StepEnteringCustomerInfo
	StepReviewingSummary
)

var stepNames = [...]string{
	StepSelectingProducts:    "selecting_products",
	StepConfiguringItems:     "configuring_items",
	StepEnteringCustomerInfo: "entering_customer_info",
	StepReviewingSummary:     "reviewing_summary",
}

func (s Step) String() string {
	if s < StepSelectingProducts || s > StepReviewingSummary {
		return "unknown"
	}
	return stepNames[s]
}

// CurrentStep derives the active step from the checklist: the first step
// whose completeness conditions are unmet.
func CurrentStep(c Checklist) Step {
	switch {
	case !c.Passed(CondItems):
		return StepSelectingProducts
	case !c.Passed(CondConfig):
		return StepConfiguringItems
	case !c.Passed(CondCustomer) || !c.Passed(CondDelivery):
		return StepEnteringCustomerInfo
	default:
		return StepReviewingSummary
	}
}

// stepGuard returns whether the conditions owned by step s are satisfied,
// which is what gates leaving s forward.
func stepGuard(s Step, c Checklist) bool {
	switch s {
	case StepSelectingProducts:
		return c.Passed(CondItems)
	case StepConfiguringItems:
		return c.Passed(CondConfig)
	case StepEnteringCustomerInfo:
		return c.Passed(CondCustomer) && c.Passed(CondDelivery)
	default:
		return false
	}
}

// Advance returns the next step when the current step's guard holds.
// ok is false when the guard fails or s is already the last step.
func Advance(s Step, c Checklist) (Step, bool) {
	if s >= StepReviewingSummary {
		return s, false
	}
	if !stepGuard(s, c) {
		return s, false
	}
	return s + 1, true
}

// Back returns the previous step; going back is always allowed.
func Back(s Step) Step {
	if s <= StepSelectingProducts {
		return StepSelectingProducts
	}
	return s - 1
}
