package service

import (
	"github.com/minikart-next/minikart/internal/repository"
)

// DashboardService backs the admin landing page.
type DashboardService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(userRepo repository.UserRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// AdminProfile is the card shown on the dashboard. Only contact fields are
// projected; credentials stay out of the payload.
type AdminProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Counters are the storefront totals shown next to the profile.
type Counters struct {
	Users    int64 `json:"users"`
	Products int64 `json:"products"`
	Orders   int64 `json:"orders"`
}

// Overview returns the admin's profile projection and the counters.
func (s *DashboardService) Overview(adminID uint) (*AdminProfile, *Counters, error) {
	admin, err := s.userRepo.GetByID(adminID)
	if err != nil {
		return nil, nil, err
	}
	if admin == nil {
		return nil, nil, ErrNotFound
	}

	profile := &AdminProfile{
		Name:  admin.Name,
		Email: admin.Email,
		Phone: admin.Phone,
	}

	counters := &Counters{}
	if counters.Users, err = s.userRepo.Count(); err != nil {
		return nil, nil, err
	}
	if counters.Products, err = s.productRepo.Count(); err != nil {
		return nil, nil, err
	}
	if counters.Orders, err = s.orderRepo.Count(); err != nil {
		return nil, nil, err
	}
	return profile, counters, nil
}
