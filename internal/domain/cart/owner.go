package cart

import "coursemarket-app/internal/domain/users"

// Owner identifies who a cart (and later its checkout) belongs to. Exactly
// one side must be set; services reject anything else.
type Owner struct {
	BuyerID   *uint
	CompanyID *uint
}

func OwnerFor(role string, userID uint) Owner {
	if role == users.RoleCompany {
		return Owner{CompanyID: &userID}
	}
	return Owner{BuyerID: &userID}
}

func (o Owner) Empty() bool {
	return o.BuyerID == nil && o.CompanyID == nil
}

func (o Owner) Ambiguous() bool {
	return o.BuyerID != nil && o.CompanyID != nil
}

func (o Owner) IsCompany() bool {
	return o.CompanyID != nil
}

func (o Owner) ID() uint {
	if o.BuyerID != nil {
		return *o.BuyerID
	}
	if o.CompanyID != nil {
		return *o.CompanyID
	}
	return 0
}
