package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTP codes are valid for 5 minutes and single-use.
const otpTTL = 5 * time.Minute

const otpKeyPrefix = "aadhaar_otp:"

var ErrOTPNotFound = errors.New("otp not found or expired")

// OTPStore holds short-lived Aadhaar login codes.
type OTPStore interface {
	Put(ctx context.Context, aadhaarNumber, otp string) error
	// Take returns the stored code and removes it; one-time use.
	Take(ctx context.Context, aadhaarNumber string) (string, error)
}

type redisOTPStore struct {
	client *redis.Client
}

func NewOTPStore(client *redis.Client) OTPStore {
	return &redisOTPStore{client: client}
}

func (s *redisOTPStore) Put(ctx context.Context, aadhaarNumber, otp string) error {
	return s.client.Set(ctx, otpKeyPrefix+aadhaarNumber, otp, otpTTL).Err()
}

func (s *redisOTPStore) Take(ctx context.Context, aadhaarNumber string) (string, error) {
	otp, err := s.client.GetDel(ctx, otpKeyPrefix+aadhaarNumber).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrOTPNotFound
	}
	if err != nil {
		return "", err
	}
	return otp, nil
}
