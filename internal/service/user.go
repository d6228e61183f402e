package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"

	"github.com/dailyvest/backend/internal/config"
	"github.com/dailyvest/backend/internal/model"
	"github.com/dailyvest/backend/internal/repository"
)

var (
	ErrEmailTaken          = errors.New("email is already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidReferralCode = errors.New("invalid referral code")
)

type UserService struct {
	repo *repository.Repository
	cfg  *config.Config
}

func NewUserService(repo *repository.Repository, cfg *config.Config) *UserService {
	return &UserService{repo: repo, cfg: cfg}
}

// Register creates the user, their wallet, and pays the one-time
// registration bonus (+0.5 points) to the referrer when a valid referral
// code was supplied.
func (s *UserService) Register(ctx context.Context, email, password, referralCode string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	var referredBy *int64
	if referralCode != "" {
		referrer, err := s.repo.GetUserByReferralCode(ctx, referralCode)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, ErrInvalidReferralCode
			}
			return nil, err
		}
		referredBy = &referrer.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := newReferralCode()
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		ReferralCode: code,
		ReferredBy:   referredBy,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.repo.CreateWallet(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	if referredBy != nil {
		if err := s.repo.UpdateWalletPoints(ctx, *referredBy, model.RegistrationBonusPoints); err != nil {
			// Signup must not fail over the referrer's bonus.
			log.Printf("[Users] Failed to credit registration bonus to user %d: %v", *referredBy, err)
		}
	}

	return user, nil
}

// Login verifies the password and issues an HS256 access token with the
// user id as subject.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		ExpiresAt: time.Now().Add(s.cfg.Server.JWTTTL).Unix(),
		Subject:   strconv.FormatInt(user.ID, 10),
	})

	signed, err := token.SignedString([]byte(s.cfg.Server.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetUser(ctx, id)
}

func newReferralCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}
