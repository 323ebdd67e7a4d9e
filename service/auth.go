package service

import (
	"errors"
	"time"

	dmn "github.com/beka-birhanu/vinom-floodfill/domain"
	"github.com/beka-birhanu/vinom-floodfill/service/i"
	"github.com/google/uuid"
)

const tokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNilDependency      = errors.New("nil dependency")
)

// Auth registers operators and issues their access tokens.
type Auth struct {
	operatorRepo i.OperatorRepo
	tokenizer    i.Tokenizer
}

// NewAuthService creates an Auth backed by repo and tokenizer.
func NewAuthService(repo i.OperatorRepo, tokenizer i.Tokenizer) (i.Authenticator, error) {
	if repo == nil || tokenizer == nil {
		return nil, ErrNilDependency
	}
	return &Auth{
		operatorRepo: repo,
		tokenizer:    tokenizer,
	}, nil
}

func (a *Auth) Register(username, password string) error {
	operatorConfig := dmn.OperatorConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	}

	operator, err := dmn.NewOperator(operatorConfig)
	if err != nil {
		return err
	}

	if _, err := a.operatorRepo.ByUsername(username); err == nil {
		return i.ErrConflict
	}

	return a.operatorRepo.Save(operator)
}

func (a *Auth) SignIn(username, password string) (*dmn.Operator, string, error) {
	operator, err := a.operatorRepo.ByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !operator.VerifyPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"operatorID": operator.ID.String(),
		"username":   operator.Username,
	}, tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return operator, token, nil
}
