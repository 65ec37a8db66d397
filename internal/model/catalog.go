package model

import "fmt"

// Service is a bookable salon service. Duration and price can be overridden
// per length variant; buffers always come from the base service.
type Service struct {
	ID                  string
	SalonID             string
	Name                string
	DurationMinutes     int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	PriceCents          int64
	DepositRequired     bool
	Variants            []ServiceVariant
}

// ServiceVariant is an optional length variant of a service (e.g. "long hair").
type ServiceVariant struct {
	ID              string
	Name            string
	DurationMinutes int
	PriceCents      int64
}

// ServiceSelection is one requested service, optionally pinned to a variant.
type ServiceSelection struct {
	ServiceID string
	VariantID string
}

// EffectiveDuration returns the service duration in minutes for the selected
// variant, or the base duration when no variant is selected.
func (s Service) EffectiveDuration(variantID string) (int, error) {
	if variantID == "" {
		return s.DurationMinutes, nil
	}
	for _, v := range s.Variants {
		if v.ID == variantID {
			return v.DurationMinutes, nil
		}
	}
	return 0, fmt.Errorf("%w: service %s has no variant %s", ErrValidation, s.ID, variantID)
}

// EffectivePrice returns the price in cents for the selected variant, or the
// base price when no variant is selected.
func (s Service) EffectivePrice(variantID string) (int64, error) {
	if variantID == "" {
		return s.PriceCents, nil
	}
	for _, v := range s.Variants {
		if v.ID == variantID {
			return v.PriceCents, nil
		}
	}
	return 0, fmt.Errorf("%w: service %s has no variant %s", ErrValidation, s.ID, variantID)
}

// OccupiedMinutes is the slot footprint of the service: effective duration
// plus both buffers.
func (s Service) OccupiedMinutes(variantID string) (int, error) {
	d, err := s.EffectiveDuration(variantID)
	if err != nil {
		return 0, err
	}
	return d + s.BufferBeforeMinutes + s.BufferAfterMinutes, nil
}
