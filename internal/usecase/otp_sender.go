package usecase

import (
	"context"

	"electromart/pkg/utils"

	"go.uber.org/zap"
)

// OTPSender delivers a one-time code out of band (SMS or email).
type OTPSender interface {
	Send(ctx context.Context, contact string, kind utils.ContactKind, code string) error
}

// logOTPSender logs the code instead of sending it. Development only.
type logOTPSender struct {
	log *zap.Logger
}

func NewLogOTPSender(log *zap.Logger) OTPSender {
	return &logOTPSender{log: log}
}

func (s *logOTPSender) Send(ctx context.Context, contact string, kind utils.ContactKind, code string) error {
	s.log.Info("OTP generated",
		zap.String("contact", contact),
		zap.String("kind", string(kind)),
		zap.String("otp_code", code),
	)
	return nil
}
