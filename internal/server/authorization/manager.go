// Package authorization combines voter verdicts into a single access decision.
package authorization

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/adminvote/internal/common"
	"github.com/dmitrijs2005/adminvote/internal/logging"
	"github.com/dmitrijs2005/adminvote/internal/server/voter"
)

// Strategy selects how individual verdicts are combined.
type Strategy string

const (
	// Affirmative grants as soon as one voter grants.
	Affirmative Strategy = "affirmative"
	// Consensus grants when grants outnumber denials.
	Consensus Strategy = "consensus"
	// Unanimous grants only when no voter denies and at least one grants.
	Unanimous Strategy = "unanimous"
)

// ParseStrategy maps a configuration value onto a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case Affirmative, Consensus, Unanimous:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnknownStrategy, s)
	}
}

// AuthorizationChecker is what transports depend on.
type AuthorizationChecker interface {
	IsGranted(ctx context.Context, attribute string, identity any) bool
}

// Option tunes an AccessDecisionManager.
type Option func(*AccessDecisionManager)

// WithStrategy sets the combining strategy. Default is Affirmative.
func WithStrategy(s Strategy) Option {
	return func(m *AccessDecisionManager) { m.strategy = s }
}

// WithAllowIfAllAbstain sets the verdict returned when no voter takes part.
func WithAllowIfAllAbstain(allow bool) Option {
	return func(m *AccessDecisionManager) { m.allowIfAllAbstain = allow }
}

// WithLogger makes the manager log every vote at debug level.
func WithLogger(l logging.Logger) Option {
	return func(m *AccessDecisionManager) { m.logger = l.With("module", "access_decision_manager") }
}

// AccessDecisionManager asks each voter in turn. Voters that do not support
// the attribute abstain.
type AccessDecisionManager struct {
	voters                    []voter.Voter
	strategy                  Strategy
	allowIfAllAbstain         bool
	allowIfEqualGrantedDenied bool
	logger                    logging.Logger
}

func NewAccessDecisionManager(voters []voter.Voter, opts ...Option) *AccessDecisionManager {
	m := &AccessDecisionManager{
		voters:                    voters,
		strategy:                  Affirmative,
		allowIfEqualGrantedDenied: true,
		logger:                    logging.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsGranted returns the combined verdict of all voters for attribute.
func (m *AccessDecisionManager) IsGranted(ctx context.Context, attribute string, identity any) bool {
	var granted, denied int

	for _, v := range m.voters {
		if !v.Supports(attribute) {
			m.logger.Debug(ctx, "vote", "voter", voterName(v), "attribute", attribute, "result", "abstain")
			continue
		}

		ok := v.Decide(attribute, identity)
		m.logger.Debug(ctx, "vote", "voter", voterName(v), "attribute", attribute, "result", verdict(ok))

		if ok {
			granted++
			if m.strategy == Affirmative {
				return true
			}
		} else {
			denied++
			if m.strategy == Unanimous {
				return false
			}
		}
	}

	if granted == 0 && denied == 0 {
		return m.allowIfAllAbstain
	}

	switch m.strategy {
	case Consensus:
		if granted == denied {
			return m.allowIfEqualGrantedDenied
		}
		return granted > denied
	case Unanimous:
		return granted > 0
	default:
		return false
	}
}

func verdict(ok bool) string {
	if ok {
		return "granted"
	}
	return "denied"
}

func voterName(v voter.Voter) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", v)
}
