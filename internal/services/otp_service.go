package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"tyremart/internal/caching"
	"tyremart/internal/common"
	"tyremart/internal/config"
	"tyremart/internal/models"
	"tyremart/internal/repositories"
)

// OTPService issues and verifies one-time passcodes for distributor login.
// Codes are single-use: a successful verification clears the stored code, and
// an expired code is cleared on the failed attempt so the caller must request
// a fresh one.
type OTPService interface {
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (*models.AuthSession, error)
}

type otpService struct {
	distributors repositories.DistributorRepository
	notifier     NotificationService
	tokens       TokenService
	cache        caching.CacheService
	cfg          config.OTPConfig
	now          func() time.Time
}

func NewOTPService(distributors repositories.DistributorRepository, notifier NotificationService, tokens TokenService, cache caching.CacheService, cfg config.OTPConfig) OTPService {
	return &otpService{
		distributors: distributors,
		notifier:     notifier,
		tokens:       tokens,
		cache:        cache,
		cfg:          cfg,
		now:          time.Now,
	}
}

// RequestOTP generates a fresh code for the distributor registered under the
// given email, persists it, then dispatches it by mail. Persist-then-notify:
// a failed send leaves the code on file so a retried send or verify still has
// consistent state.
func (s *otpService) RequestOTP(ctx context.Context, email string) error {
	distributor, err := s.distributors.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	throttleKey := fmt.Sprintf("otp_resend:%s", distributor.ID.String())
	if s.cache != nil {
		limited, err := s.cache.IsRateLimited(ctx, throttleKey, 1, s.cfg.ResendInterval())
		if err != nil {
			// Throttle is best-effort; a cache outage must not block login.
			log.Printf("WARN: OTP throttle check failed: %v", err)
		} else if limited {
			return common.ErrOTPThrottled
		}
	}

	code, err := s.generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	issuedAt := s.now()
	if err := s.distributors.SetOTP(ctx, distributor.ID, code, issuedAt); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.IncrementRateLimit(ctx, throttleKey, s.cfg.ResendInterval()); err != nil {
			log.Printf("WARN: OTP throttle increment failed: %v", err)
		}
	}

	subject := "Your OTP for Verification"
	body := fmt.Sprintf("Your OTP is %s for %s. It is valid for %d minutes.", code, distributor.ShopName, s.cfg.ValidityMinutes)
	if err := s.notifier.SendEmail(ctx, email, subject, body); err != nil {
		log.Printf("WARN: OTP email to %s failed after code was persisted: %v", email, err)
		return common.ErrNotificationFailed
	}
	return nil
}

// VerifyOTP checks the supplied code against the stored state and mints a
// distributor session on success.
func (s *otpService) VerifyOTP(ctx context.Context, email, code string) (*models.AuthSession, error) {
	distributor, err := s.distributors.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !distributor.HasOTP() {
		return nil, common.ErrInvalidOTP
	}
	if strings.TrimSpace(code) != *distributor.OTPCode {
		return nil, common.ErrInvalidOTP
	}
	if s.now().Sub(*distributor.OTPCreatedAt) > s.cfg.Validity() {
		// Stale code goes back to the no-code-issued state.
		if err := s.distributors.ClearOTP(ctx, distributor.ID); err != nil {
			log.Printf("WARN: failed to clear expired OTP for %s: %v", distributor.ID, err)
		}
		return nil, common.ErrExpiredOTP
	}

	// Single-use: consume the code before handing out a session.
	if err := s.distributors.ClearOTP(ctx, distributor.ID); err != nil {
		return nil, err
	}

	tokens, err := s.tokens.Issue(distributor.ID, models.RoleDistributor, nil)
	if err != nil {
		return nil, err
	}

	return &models.AuthSession{
		Message:  "Login successful",
		ShopName: distributor.ShopName,
		Email:    common.SafeString(distributor.Email),
		Tokens:   tokens,
	}, nil
}

// generateCode draws a fixed-width decimal code uniformly, e.g. 100000-999999
// for the canonical 6 digits.
func (s *otpService) generateCode() (string, error) {
	digits := s.cfg.Digits
	if digits <= 0 {
		digits = 6
	}
	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits-1)), nil)
	span := new(big.Int).Mul(low, big.NewInt(9)) // [low, 10*low) has 9*low values
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	return new(big.Int).Add(low, n).String(), nil
}
