package authclient_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	authclient "github.com/sunnypayments/go-auth-client"
)

func TestParseAccountType(t *testing.T) {
	tests := []struct {
		raw   string
		want  authclient.AccountType
		valid bool
	}{
		{"individual", authclient.AccountTypeIndividual, true},
		{"business", authclient.AccountTypeBusiness, true},
		{"institution", authclient.AccountTypeInstitution, true},
		{"developer", authclient.AccountTypeDeveloper, true},
		{"admin", authclient.AccountTypeAdmin, true},
		{"notarealtype", "", false},
		{"", "", false},
		{"ADMIN", "", false},
	}

	for _, tc := range tests {
		got, ok := authclient.ParseAccountType(tc.raw)
		assert.Equal(t, tc.valid, ok, "raw=%q", tc.raw)
		if tc.valid {
			assert.Equal(t, tc.want, got)
		}
	}
}

func TestSessionValidBoundary(t *testing.T) {
	now := time.Now()

	session := &authclient.Session{
		AccessToken: "token",
		ExpiresAt:   now.Add(time.Hour),
	}
	assert.True(t, session.Valid(now))

	// expiry exactly equal to now counts as expired
	session.ExpiresAt = now
	assert.False(t, session.Valid(now))

	session.ExpiresAt = now.Add(-time.Second)
	assert.False(t, session.Valid(now))

	var nilSession *authclient.Session
	assert.False(t, nilSession.Valid(now))

	empty := &authclient.Session{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, empty.Valid(now), "session without access token is never valid")
}

func TestSignInRequestValidate(t *testing.T) {
	valid := authclient.SignInRequest{
		Email:    "pepe.rone@example.com",
		Password: "superSecret1!",
	}
	assert.NoError(t, valid.Validate())

	withType := valid
	withType.AccountType = authclient.AccountTypeBusiness
	assert.NoError(t, withType.Validate())

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, badEmail.Validate())

	shortPassword := valid
	shortPassword.Password = "short"
	assert.Error(t, shortPassword.Validate())

	badType := valid
	badType.AccountType = authclient.AccountType("wizard")
	assert.Error(t, badType.Validate())
}

func TestSignUpRequestValidate(t *testing.T) {
	valid := authclient.SignUpRequest{
		Email:           "pepe.rone@example.com",
		Password:        "superSecret1!",
		ConfirmPassword: "superSecret1!",
		FirstName:       "Pepe",
		LastName:        "Rone",
		AccountType:     authclient.AccountTypeIndividual,
		AgreeToTerms:    true,
		AgreeToPrivacy:  true,
	}
	assert.NoError(t, valid.Validate())

	mismatch := valid
	mismatch.ConfirmPassword = "somethingElse1!"
	assert.Error(t, mismatch.Validate())

	noTerms := valid
	noTerms.AgreeToTerms = false
	assert.Error(t, noTerms.Validate())

	missingType := valid
	missingType.AccountType = ""
	assert.Error(t, missingType.Validate())

	badPhone := valid
	badPhone.Phone = "not-a-phone"
	assert.Error(t, badPhone.Validate())

	goodPhone := valid
	goodPhone.Phone = "+12125551234"
	assert.NoError(t, goodPhone.Validate())
}

func TestMFAVerifyRequestValidate(t *testing.T) {
	valid := authclient.MFAVerifyRequest{Code: "123456", Method: authclient.MFAMethodTOTP}
	assert.NoError(t, valid.Validate())

	badMethod := valid
	badMethod.Method = authclient.MFAMethod("carrier_pigeon")
	assert.Error(t, badMethod.Validate())

	shortCode := valid
	shortCode.Code = "12"
	assert.Error(t, shortCode.Validate())
}

func TestAuthResponseEstablished(t *testing.T) {
	user := &authclient.User{Email: "pepe@example.com"}
	session := &authclient.Session{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}

	assert.True(t, (&authclient.AuthResponse{Success: true, User: user, Session: session}).Established())
	assert.False(t, (&authclient.AuthResponse{Success: true, User: user}).Established())
	assert.False(t, (&authclient.AuthResponse{Success: true, Session: session}).Established())
	assert.False(t, (&authclient.AuthResponse{Success: false, User: user, Session: session}).Established())

	var nilResponse *authclient.AuthResponse
	assert.False(t, nilResponse.Established())
}
