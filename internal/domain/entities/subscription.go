package entities

// PurchaseSubscriptionInput represents input for buying a plan
type PurchaseSubscriptionInput struct {
	PlanID          string `json:"planId" binding:"required,uuid"`
	PaymentMethodID string `json:"paymentMethodId" binding:"required"`
}

// ExtendSubscriptionInput represents input for extending a subscription
type ExtendSubscriptionInput struct {
	ExtraDays int `json:"extraDays" binding:"required,min=1"`
}
