package models

type UserRole string
type VendorStatus string
type ProductType string
type ProductStatus string
type ServiceType string
type OrderStatus string
type PaymentStatus string
type CommissionStatus string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleVendor   UserRole = "VENDOR"
	UserRoleCustomer UserRole = "CUSTOMER"

	VendorStatusPending   VendorStatus = "PENDING"
	VendorStatusApproved  VendorStatus = "APPROVED"
	VendorStatusRejected  VendorStatus = "REJECTED"
	VendorStatusSuspended VendorStatus = "SUSPENDED"

	ProductTypePhysical    ProductType = "PHYSICAL"
	ProductTypeDigital     ProductType = "DIGITAL"
	ProductTypeMerchandise ProductType = "MERCHANDISE"

	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusSoldOut  ProductStatus = "SOLD_OUT"
	ProductStatusArchived ProductStatus = "ARCHIVED"

	ServiceTypePortrait     ServiceType = "PORTRAIT"
	ServiceTypeSculpture    ServiceType = "SCULPTURE"
	ServiceTypeIllustration ServiceType = "ILLUSTRATION"
	ServiceTypeCrochet      ServiceType = "CROCHET"
	ServiceTypePainting     ServiceType = "PAINTING"
	ServiceTypeDigitalArt   ServiceType = "DIGITAL_ART"
	ServiceTypeCustom       ServiceType = "CUSTOM"

	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"

	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"

	CommissionStatusRequested         CommissionStatus = "REQUESTED"
	CommissionStatusAccepted          CommissionStatus = "ACCEPTED"
	CommissionStatusInProgress        CommissionStatus = "IN_PROGRESS"
	CommissionStatusRevisionRequested CommissionStatus = "REVISION_REQUESTED"
	CommissionStatusCompleted         CommissionStatus = "COMPLETED"
	CommissionStatusDelivered         CommissionStatus = "DELIVERED"
	CommissionStatusCancelled         CommissionStatus = "CANCELLED"
)

// orderTransitions is the forward-only order lifecycle. DELIVERED can still
// move to REFUNDED; CANCELLED and REFUNDED are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusRefunded},
	OrderStatusCancelled:  {},
	OrderStatusRefunded:   {},
}

// commissionTransitions: REVISION_REQUESTED and DELIVERED branch off
// COMPLETED; revisions loop back through IN_PROGRESS.
var commissionTransitions = map[CommissionStatus][]CommissionStatus{
	CommissionStatusRequested:         {CommissionStatusAccepted, CommissionStatusCancelled},
	CommissionStatusAccepted:          {CommissionStatusInProgress, CommissionStatusCancelled},
	CommissionStatusInProgress:        {CommissionStatusCompleted},
	CommissionStatusCompleted:         {CommissionStatusRevisionRequested, CommissionStatusDelivered},
	CommissionStatusRevisionRequested: {CommissionStatusInProgress},
	CommissionStatusDelivered:         {},
	CommissionStatusCancelled:         {},
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s CommissionStatus) CanTransitionTo(next CommissionStatus) bool {
	for _, allowed := range commissionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s CommissionStatus) IsTerminal() bool {
	return len(commissionTransitions[s]) == 0
}

func (s CommissionStatus) IsValid() bool {
	_, ok := commissionTransitions[s]
	return ok
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}
