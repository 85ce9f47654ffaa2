package service

import (
	"fmt"
	"printwear-storefront/internal/client"
	"printwear-storefront/internal/model"
	"strings"
)

const (
	placeholderFirst = "Customer"
	placeholderLast  = "Order"
)

// splitName derives first/last name from a free-form full name. A missing
// name must not block fulfillment when the address itself is present, so
// empty input falls back to a placeholder pair. A single-token name keeps
// the token as first name and takes the placeholder as last.
func splitName(full string) (first, last string) {
	fields := strings.Fields(strings.TrimSpace(full))
	switch len(fields) {
	case 0:
		return placeholderFirst, placeholderLast
	case 1:
		return fields[0], placeholderFirst
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}

// resolveShippingAddress extracts a Printify-ready address from the session,
// preferring explicit shipping details over customer details. It fails when
// any of line1, city, postal code, country or email is absent.
func resolveShippingAddress(sess *model.CheckoutSession) (*client.OrderAddress, error) {
	contact := sess.ShippingDetails
	if contact == nil || contact.Address == nil {
		contact = sess.CustomerDetails
	}
	if contact == nil || contact.Address == nil {
		return nil, fmt.Errorf("%w: no shipping address on session", ErrValidation)
	}

	email := sess.CustomerEmail
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		email = sess.CustomerDetails.Email
	}

	addr := contact.Address
	if addr.Line1 == "" || addr.City == "" || addr.PostalCode == "" || addr.Country == "" || email == "" {
		return nil, fmt.Errorf("%w: shipping address incomplete", ErrValidation)
	}

	phone := ""
	if sess.CustomerDetails != nil {
		phone = sess.CustomerDetails.Phone
	}
	if contact.Phone != "" {
		phone = contact.Phone
	}

	first, last := splitName(contact.Name)
	return &client.OrderAddress{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Phone:     phone,
		Country:   addr.Country,
		Region:    addr.State,
		Address1:  addr.Line1,
		Address2:  addr.Line2,
		City:      addr.City,
		Zip:       addr.PostalCode,
	}, nil
}
