package animset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/animset/pkg/formats"
)

// ErrRequiredToken marks a required token that is not in its table.
var ErrRequiredToken = errors.New("required token missing")

// RequiredTokenError is returned by IndexOfToken when a required token is unknown.
// It is a configuration defect; callers should abort what they are building.
type RequiredTokenError struct {
	Token   string
	Context string
}

func (e *RequiredTokenError) Error() string {
	return fmt.Sprintf("%s: unknown token '%s'", e.Context, e.Token)
}

func (e *RequiredTokenError) Unwrap() error {
	return ErrRequiredToken
}

// IndexOfAnimation returns the index of the named animation, ignoring case.
// It returns -1 if the name is absent or mi is nil.
func IndexOfAnimation(name string, mi *ModelInfo) int {
	if mi == nil {
		return -1
	}
	for i := 0; i < mi.NumAnimations; i++ {
		if strings.EqualFold(mi.Animations[i].Name, name) {
			return i
		}
	}
	return -1
}

// AnimationByName returns the named animation, ignoring case, or nil.
func AnimationByName(name string, mi *ModelInfo) *formats.Animation {
	return mi.Animation(IndexOfAnimation(name, mi))
}

// IndexOfToken returns the position of token in table, ignoring case.
//
// When the token is absent it returns 0, or a *RequiredTokenError naming
// context if failOnError is set.
func IndexOfToken(token string, table []string, failOnError bool, context string) (int, error) {
	for i, s := range table {
		if strings.EqualFold(token, s) {
			return i, nil
		}
	}
	if failOnError {
		return 0, &RequiredTokenError{Token: token, Context: context}
	}
	return 0, nil
}
