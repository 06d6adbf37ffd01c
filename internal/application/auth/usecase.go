package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/kits-invoicing/internal/application/dto"
	"github.com/jhoicas/kits-invoicing/internal/domain"
	"github.com/jhoicas/kits-invoicing/pkg/jwt"
)

// CredentialVerifier decide si un par usuario/contraseña es válido.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// StaticCredentialVerifier un único par configurado; la contraseña se guarda como hash bcrypt.
type StaticCredentialVerifier struct {
	username     string
	passwordHash []byte
}

// NewStaticCredentialVerifier hashea la contraseña en claro recibida de la configuración.
func NewStaticCredentialVerifier(username, password string) (*StaticCredentialVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash de contraseña: %w", err)
	}
	return &StaticCredentialVerifier{username: username, passwordHash: hash}, nil
}

// Verify compara el usuario en tiempo constante y la contraseña contra el hash.
func (v *StaticCredentialVerifier) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)) == nil
	return userOK && passOK
}

// SessionConfig configuración para generación de tokens de sesión.
type SessionConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login con credenciales estáticas y emisión/validación de token de sesión.
type AuthUseCase struct {
	verifier CredentialVerifier
	session  SessionConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(verifier CredentialVerifier, session SessionConfig) *AuthUseCase {
	return &AuthUseCase{verifier: verifier, session: session}
}

// Login verifica usuario/contraseña y genera el JWT de sesión.
// Devuelve domain.ErrUnauthorized si las credenciales no coinciden.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if !uc.verifier.Verify(in.Username, in.Password) {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.session.Secret, in.Username, uc.session.Issuer, uc.session.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Username: in.Username}, nil
}

// Authenticate valida el token y devuelve el usuario; domain.ErrUnauthorized si no es válido.
func (uc *AuthUseCase) Authenticate(token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	user, err := jwt.Parse(uc.session.Secret, token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	return user, nil
}

// ExpMinutes duración de la sesión; la usa el handler para el MaxAge de la cookie.
func (uc *AuthUseCase) ExpMinutes() int {
	return uc.session.ExpMinutes
}
