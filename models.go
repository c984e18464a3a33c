package authclient

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// AccountType classifies a user and determines the dashboard the user is
// routed to after authentication.
type AccountType string

const (
	AccountTypeIndividual  AccountType = "individual"
	AccountTypeBusiness    AccountType = "business"
	AccountTypeInstitution AccountType = "institution"
	AccountTypeDeveloper   AccountType = "developer"
	AccountTypeAdmin       AccountType = "admin"
)

// IsValid checks if the account type is one of the predefined values
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeIndividual, AccountTypeBusiness, AccountTypeInstitution,
		AccountTypeDeveloper, AccountTypeAdmin:
		return true
	default:
		return false
	}
}

// ParseAccountType returns the account type for a raw string. Unknown values
// return false rather than an error so query parameters can be probed safely.
func ParseAccountType(s string) (AccountType, bool) {
	t := AccountType(s)
	return t, t.IsValid()
}

// Provider identifies a federated identity provider
type Provider string

const (
	ProviderEmail     Provider = "email"
	ProviderGoogle    Provider = "google"
	ProviderApple     Provider = "apple"
	ProviderMicrosoft Provider = "microsoft"
	ProviderGithub    Provider = "github"
	ProviderLinkedin  Provider = "linkedin"
)

// IsValid checks if the provider is a known federated provider
func (p Provider) IsValid() bool {
	switch p {
	case ProviderEmail, ProviderGoogle, ProviderApple, ProviderMicrosoft,
		ProviderGithub, ProviderLinkedin:
		return true
	default:
		return false
	}
}

// MFAMethod is a second-factor delivery mechanism
type MFAMethod string

const (
	MFAMethodSMS           MFAMethod = "sms"
	MFAMethodEmail         MFAMethod = "email"
	MFAMethodTOTP          MFAMethod = "totp"
	MFAMethodBiometric     MFAMethod = "biometric"
	MFAMethodHardwareToken MFAMethod = "hardware_token"
)

// IsValid checks if the method is a supported second factor
func (m MFAMethod) IsValid() bool {
	switch m {
	case MFAMethodSMS, MFAMethodEmail, MFAMethodTOTP, MFAMethodBiometric,
		MFAMethodHardwareToken:
		return true
	default:
		return false
	}
}

// VerificationStatus tracks server-side identity verification
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
	VerificationExpired  VerificationStatus = "expired"
)

// User is the read-only profile the client holds. Identity is created and
// mutated server-side; the SDK only ever deserializes it.
type User struct {
	ID            uuid.UUID          `json:"id"`
	Email         string             `json:"email"`
	EmailVerified bool               `json:"emailVerified,omitempty"`
	Phone         string             `json:"phone,omitempty"`
	AccountType   AccountType        `json:"accountType"`
	FirstName     string             `json:"firstName,omitempty"`
	LastName      string             `json:"lastName,omitempty"`
	Avatar        string             `json:"avatar,omitempty"`
	Timezone      string             `json:"timezone,omitempty"`
	Locale        string             `json:"locale,omitempty"`
	Currency      string             `json:"currency,omitempty"`
	MFAEnabled    bool               `json:"mfaEnabled,omitempty"`
	MFAMethods    []MFAMethod        `json:"mfaMethods,omitempty"`
	KYCStatus     VerificationStatus `json:"kycStatus,omitempty"`
	LastLoginAt   *time.Time         `json:"lastLoginAt,omitempty"`
	CreatedAt     *time.Time         `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time         `json:"updatedAt,omitempty"`
}

// Session is the access/refresh token pair plus expiry that represents an
// authenticated client-server relationship.
type Session struct {
	ID           string    `json:"id,omitempty"`
	UserID       string    `json:"userId,omitempty"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Valid reports whether the session has not yet expired. A session whose
// expiry equals the reference instant counts as expired.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return false
	}
	return s.ExpiresAt.After(now)
}

// ResponseError is the structured error object an endpoint may reply with
type ResponseError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

// AuthResponse is the common envelope for every auth endpoint.
type AuthResponse struct {
	Success     bool           `json:"success"`
	User        *User          `json:"user,omitempty"`
	Session     *Session       `json:"session,omitempty"`
	RedirectURL string         `json:"redirectUrl,omitempty"`
	RequiresMFA bool           `json:"requiresMFA,omitempty"`
	MFAMethods  []MFAMethod    `json:"mfaMethods,omitempty"`
	Message     string         `json:"message,omitempty"`
	Error       *ResponseError `json:"error,omitempty"`
}

// Established reports whether the response carries everything needed to
// establish a local session. Partial payloads never authenticate.
func (r *AuthResponse) Established() bool {
	return r != nil && r.Success && r.User != nil && r.Session != nil
}

// SignInRequest is the credential sign-in payload
type SignInRequest struct {
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	AccountType AccountType `json:"accountType,omitempty"`
	RememberMe  bool        `json:"rememberMe,omitempty"`
	MFACode     string      `json:"mfaCode,omitempty"`
}

// Validate will run validation rules
func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&r.AccountType, validation.By(validAccountType(true))),
	)
}

// SignUpRequest is the account creation payload. Conditional fields apply
// depending on the chosen account type, the server enforces those rules.
type SignUpRequest struct {
	Email           string      `json:"email"`
	Password        string      `json:"password"`
	ConfirmPassword string      `json:"confirmPassword"`
	FirstName       string      `json:"firstName"`
	LastName        string      `json:"lastName"`
	Phone           string      `json:"phone,omitempty"`
	AccountType     AccountType `json:"accountType"`
	AgreeToTerms    bool        `json:"agreeToTerms"`
	AgreeToPrivacy  bool        `json:"agreeToPrivacy"`

	BusinessName    string `json:"businessName,omitempty"`
	BusinessType    string `json:"businessType,omitempty"`
	InstitutionName string `json:"institutionName,omitempty"`
	InstitutionType string `json:"institutionType,omitempty"`
	Company         string `json:"company,omitempty"`
	ReferralCode    string `json:"referralCode,omitempty"`
}

// Validate will run validation rules
func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(validateStringEquals(r.Password, "passwords do not match")),
		),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Phone, validation.By(validPhoneNumber)),
		validation.Field(&r.AccountType, validation.Required, validation.By(validAccountType(false))),
		validation.Field(&r.AgreeToTerms, validation.Required),
		validation.Field(&r.AgreeToPrivacy, validation.Required),
	)
}

// SocialAuthRequest carries provider-issued credentials for federated sign-in
type SocialAuthRequest struct {
	Provider       Provider    `json:"provider"`
	ProviderUserID string      `json:"providerUserId,omitempty"`
	AccessToken    string      `json:"accessToken"`
	RefreshToken   string      `json:"refreshToken,omitempty"`
	AccountType    AccountType `json:"accountType,omitempty"`
}

// Validate will run validation rules
func (r SocialAuthRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Provider, validation.Required, validation.By(validProvider)),
		validation.Field(&r.AccessToken, validation.Required),
		validation.Field(&r.AccountType, validation.By(validAccountType(true))),
	)
}

// PasswordResetRequest initiates a password reset
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// Validate will run validation rules
func (r PasswordResetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// PasswordResetConfirmRequest completes a password reset
type PasswordResetConfirmRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate will run validation rules
func (r PasswordResetConfirmRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(validateStringEquals(r.Password, "passwords do not match")),
		),
	)
}

// MFASetupRequest registers a second factor
type MFASetupRequest struct {
	Method      MFAMethod `json:"method"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	BackupCodes []string  `json:"backupCodes,omitempty"`
}

// Validate will run validation rules
func (r MFASetupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Method, validation.Required, validation.By(validMFAMethod)),
		validation.Field(&r.PhoneNumber, validation.By(validPhoneNumber)),
	)
}

// MFAVerifyRequest verifies a second-factor code
type MFAVerifyRequest struct {
	Code   string    `json:"code"`
	Method MFAMethod `json:"method"`
}

// Validate will run validation rules
func (r MFAVerifyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(4, 12)),
		validation.Field(&r.Method, validation.Required, validation.By(validMFAMethod)),
	)
}

func validateStringEquals(expected, message string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != expected {
			return validation.NewError("validation_match", message)
		}
		return nil
	}
}

func validAccountType(optional bool) validation.RuleFunc {
	return func(value any) error {
		t, _ := value.(AccountType)
		if t == "" && optional {
			return nil
		}
		if !t.IsValid() {
			return validation.NewError("validation_account_type", "unknown account type")
		}
		return nil
	}
}

func validProvider(value any) error {
	p, _ := value.(Provider)
	if !p.IsValid() {
		return validation.NewError("validation_provider", "unknown auth provider")
	}
	return nil
}

func validMFAMethod(value any) error {
	m, _ := value.(MFAMethod)
	if !m.IsValid() {
		return validation.NewError("validation_mfa_method", "unknown MFA method")
	}
	return nil
}

func validPhoneNumber(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	num, err := phonenumbers.Parse(s, "US")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return validation.NewError("validation_phone", "invalid phone number")
	}
	return nil
}
