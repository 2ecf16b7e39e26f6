package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/mhoudali/interim_app/internal/apperr"
	"github.com/mhoudali/interim_app/internal/hash"
	"github.com/mhoudali/interim_app/internal/logging"
	"github.com/mhoudali/interim_app/internal/models"
	"github.com/mhoudali/interim_app/internal/mykafka"
	"github.com/mhoudali/interim_app/internal/repo"
	"github.com/mhoudali/interim_app/internal/tokens"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("Format d'email invalide: %w", apperr.ErrInvalidArgument)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("Le mot de passe doit contenir au moins 6 caractères: %w", apperr.ErrInvalidArgument)
	}
	return nil
}

func requireField(name, value string) error {
	if value == "" {
		return fmt.Errorf("Le champ %s est requis: %w", name, apperr.ErrInvalidArgument)
	}
	return nil
}

type AuthService struct {
	Repo     *repo.GormRepo
	Tokens   *tokens.Service
	Producer *mykafka.Producer
}

type RegisterUserInput struct {
	Email      string
	Password   string
	LastName   string
	FirstName  string
	Phone      string
	Skills     []string
	Experience string
	CVURL      string
}

type RegisterCompanyInput struct {
	Email       string
	Password    string
	Name        string
	Description string
	Sector      string
	Address     string
	Phone       string
	Website     string
}

type AuthResult struct {
	PrincipalID string
	Kind        string
	Token       string
}

func (s *AuthService) RegisterUser(ctx context.Context, in RegisterUserInput) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register_user")

	for _, f := range []struct{ name, value string }{
		{"email", in.Email}, {"password", in.Password},
		{"nom", in.LastName}, {"prenom", in.FirstName},
	} {
		if err := requireField(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	// Pre-check so duplicates report cleanly; the unique index on email
	// stays the real guarantee.
	if _, err := s.Repo.GetUserByEmail(ctx, in.Email); err == nil {
		l.Warn("register_failed", "status", 409, "reason", "email already used")
		return nil, fmt.Errorf("Cet email est déjà utilisé: %w", apperr.ErrConflict)
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Email:        in.Email,
		PasswordHash: pwHash,
		LastName:     in.LastName,
		FirstName:    in.FirstName,
		Phone:        in.Phone,
		Skills:       in.Skills,
		Experience:   in.Experience,
		CVURL:        in.CVURL,
		Active:       true,
	}
	if user.Skills == nil {
		user.Skills = []string{}
	}

	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		l.Error("register_failed", "error", err)
		return nil, err
	}

	token, err := s.Tokens.Issue(user.ID, models.KindUser)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}

	s.publish(ctx, "user_events", user.ID, map[string]interface{}{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})

	l.Info("register_success", "user_id", user.ID)
	return &AuthResult{PrincipalID: user.ID, Kind: models.KindUser, Token: token}, nil
}

func (s *AuthService) RegisterCompany(ctx context.Context, in RegisterCompanyInput) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register_company")

	for _, f := range []struct{ name, value string }{
		{"email", in.Email}, {"password", in.Password},
		{"nom", in.Name}, {"description", in.Description},
	} {
		if err := requireField(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetCompanyByEmail(ctx, in.Email); err == nil {
		l.Warn("register_failed", "status", 409, "reason", "email already used")
		return nil, fmt.Errorf("Cet email est déjà utilisé: %w", apperr.ErrConflict)
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	company := models.Company{
		Email:        in.Email,
		PasswordHash: pwHash,
		Name:         in.Name,
		Description:  in.Description,
		Sector:       in.Sector,
		Address:      in.Address,
		Phone:        in.Phone,
		Website:      in.Website,
		Active:       true,
	}

	if err := s.Repo.CreateCompany(ctx, &company); err != nil {
		l.Error("register_failed", "error", err)
		return nil, err
	}

	token, err := s.Tokens.Issue(company.ID, models.KindCompany)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}

	s.publish(ctx, "company_events", company.ID, map[string]interface{}{
		"type":       "company_registered",
		"company_id": company.ID,
		"email":      company.Email,
	})

	l.Info("register_success", "company_id", company.ID)
	return &AuthResult{PrincipalID: company.ID, Kind: models.KindCompany, Token: token}, nil
}

// Login authenticates either principal kind from a single endpoint:
// users are tried first, then companies.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if err := requireField("email", email); err != nil {
		return nil, err
	}
	if err := requireField("password", password); err != nil {
		return nil, err
	}

	var (
		principalID string
		kind        string
	)

	if user, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		if !hash.CheckPassword(user.PasswordHash, password) {
			l.Warn("login_failed", "status", 401, "reason", "bad password")
			return nil, fmt.Errorf("Email ou mot de passe incorrect: %w", apperr.ErrUnauthenticated)
		}
		principalID, kind = user.ID, models.KindUser
	} else if company, err := s.Repo.GetCompanyByEmail(ctx, email); err == nil {
		if !hash.CheckPassword(company.PasswordHash, password) {
			l.Warn("login_failed", "status", 401, "reason", "bad password")
			return nil, fmt.Errorf("Email ou mot de passe incorrect: %w", apperr.ErrUnauthenticated)
		}
		principalID, kind = company.ID, models.KindCompany
	} else {
		l.Warn("login_failed", "status", 401, "reason", "unknown email")
		return nil, fmt.Errorf("Email ou mot de passe incorrect: %w", apperr.ErrUnauthenticated)
	}

	token, err := s.Tokens.Issue(principalID, kind)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}

	l.Info("login_success", "kind", kind)
	return &AuthResult{PrincipalID: principalID, Kind: kind, Token: token}, nil
}

// Principal resolves the authenticated identity back to its record,
// dispatching on the kind tag.
func (s *AuthService) Principal(ctx context.Context, id, kind string) (interface{}, error) {
	switch kind {
	case models.KindUser:
		return s.Repo.GetUser(ctx, id)
	case models.KindCompany:
		return s.Repo.GetCompany(ctx, id)
	}
	return nil, fmt.Errorf("type de compte inconnu: %w", apperr.ErrInvalidArgument)
}

func (s *AuthService) ChangePassword(ctx context.Context, id, kind, oldPassword, newPassword string) error {
	l := logging.FromContext(ctx).With("svc", "auth.change_password", "kind", kind)

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	switch kind {
	case models.KindUser:
		user, err := s.Repo.GetUser(ctx, id)
		if err != nil {
			return err
		}
		if !hash.CheckPassword(user.PasswordHash, oldPassword) {
			l.Warn("change_password_failed", "status", 400, "reason", "bad old password")
			return fmt.Errorf("Ancien mot de passe incorrect: %w", apperr.ErrInvalidArgument)
		}
		pwHash, err := hash.HashPassword(newPassword)
		if err != nil {
			return err
		}
		user.PasswordHash = pwHash
		user.UpdatedAt = time.Now().UTC()
		return s.Repo.SaveUser(ctx, user)

	case models.KindCompany:
		company, err := s.Repo.GetCompany(ctx, id)
		if err != nil {
			return err
		}
		if !hash.CheckPassword(company.PasswordHash, oldPassword) {
			l.Warn("change_password_failed", "status", 400, "reason", "bad old password")
			return fmt.Errorf("Ancien mot de passe incorrect: %w", apperr.ErrInvalidArgument)
		}
		pwHash, err := hash.HashPassword(newPassword)
		if err != nil {
			return err
		}
		company.PasswordHash = pwHash
		company.UpdatedAt = time.Now().UTC()
		return s.Repo.SaveCompany(ctx, company)
	}

	return fmt.Errorf("type de compte inconnu: %w", apperr.ErrInvalidArgument)
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event map[string]interface{}) {
	publishEvent(ctx, s.Producer, topic, key, event)
}
