package services

import (
	"context"
	"errors"
	"testing"

	"devcatalyst/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	err     error
	to      string
	subject string
}

func (f *fakeMailer) Send(_ context.Context, to, subject, _, _ string) error {
	f.to, f.subject = to, subject
	return f.err
}

type fakeRenderer struct {
	err      error
	lastName string
}

func (f *fakeRenderer) Render(name string, _ any) (string, string, string, error) {
	f.lastName = name
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject", "<p>html</p>", "text", nil
}

func TestEmailService_SendRegistrationConfirmation(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewEmailService(mailer, renderer, testLogger)

	err := svc.SendRegistrationConfirmation(context.Background(), &domain.RegistrationConfirmationEmailData{Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "registration_confirmation", renderer.lastName)
	assert.Equal(t, "ada@example.com", mailer.to)
	assert.Equal(t, "subject", mailer.subject)
}

func TestEmailService_Errors(t *testing.T) {
	ctx := context.Background()
	data := &domain.RegistrationConfirmationEmailData{Email: "ada@example.com"}

	assert.Error(t, NewEmailService(&fakeMailer{}, &fakeRenderer{}, testLogger).SendRegistrationConfirmation(ctx, nil))
	assert.Error(t, NewEmailService(&fakeMailer{}, &fakeRenderer{err: errors.New("bad template")}, testLogger).SendRegistrationConfirmation(ctx, data))
	assert.Error(t, NewEmailService(&fakeMailer{err: errors.New("smtp down")}, &fakeRenderer{}, testLogger).SendRegistrationConfirmation(ctx, data))
}
