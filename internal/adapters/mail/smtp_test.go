package mail

import (
	"context"
	"errors"
	"log/slog"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledMailerSkipsSend(t *testing.T) {
	t.Parallel()

	mailer := NewSMTPMailer(SMTPConfig{Enabled: false}, slog.Default())
	called := false
	mailer.sendFn = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}

	require.NoError(t, mailer.SendActivationMail(context.Background(), "user@example.com", "https://app/activate/t"))
	require.False(t, called)
}

func TestSendBuildsMessage(t *testing.T) {
	t.Parallel()

	mailer := NewSMTPMailer(SMTPConfig{
		Host:    "smtp.example.com",
		Port:    587,
		From:    "no-reply@example.com",
		Enabled: true,
	}, slog.Default())

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg string
	mailer.sendFn = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, string(msg)
		return nil
	}

	err := mailer.SendPasswordResetMail(context.Background(), "user@example.com", "https://app/reset-password/tok")
	require.NoError(t, err)
	require.Equal(t, "smtp.example.com:587", gotAddr)
	require.Equal(t, "no-reply@example.com", gotFrom)
	require.Equal(t, []string{"user@example.com"}, gotTo)
	require.Contains(t, gotMsg, "Subject: Password reset")
	require.Contains(t, gotMsg, "https://app/reset-password/tok")
	require.True(t, strings.Contains(gotMsg, "To: user@example.com"))
}

func TestSendWrapsRelayError(t *testing.T) {
	t.Parallel()

	mailer := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 25, Enabled: true}, slog.Default())
	relayErr := errors.New("connection refused")
	mailer.sendFn = func(string, smtp.Auth, string, []string, []byte) error {
		return relayErr
	}

	err := mailer.SendActivationMail(context.Background(), "user@example.com", "https://app/activate/t")
	require.ErrorIs(t, err, relayErr)
}
