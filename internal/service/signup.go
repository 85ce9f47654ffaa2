package service

import (
	"context"
	"fmt"
	"printwear-storefront/internal/model"
	"printwear-storefront/internal/repository"
	"regexp"
	"strings"
)

const signupSource = "coming_soon"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type SignupService interface {
	Signup(ctx context.Context, email string) error
}

type signupServiceImpl struct {
	signupRepo repository.EmailSignupRepository
}

func NewSignupService(signupRepo repository.EmailSignupRepository) SignupService {
	return &signupServiceImpl{
		signupRepo: signupRepo,
	}
}

func (s *signupServiceImpl) Signup(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}

	if err := s.signupRepo.Upsert(ctx, &model.EmailSignup{
		Email:  email,
		Source: signupSource,
	}); err != nil {
		return fmt.Errorf("store signup: %w", err)
	}
	return nil
}
