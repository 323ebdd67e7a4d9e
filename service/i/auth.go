package i

import (
	dmn "github.com/beka-birhanu/vinom-floodfill/domain"
)

// Authenticator registers operators and signs them in.
type Authenticator interface {
	Register(string, string) error
	SignIn(string, string) (*dmn.Operator, string, error)
}
