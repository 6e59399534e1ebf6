package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Parameter and state variable names accepted from external sources.
const (
	ParamInterestRateLoans    = "interest_rate_loans"
	ParamInterestRateDeposits = "interest_rate_deposits"
	ParamActive               = "active"
	StateLiquidity            = "liquidity"
)

// Parameters is the typed configuration of an agent.
type Parameters struct {
	InterestRateLoans    decimal.Decimal
	InterestRateDeposits decimal.Decimal
	Active               bool
}

// StateVariables is the typed mutable state of an agent.
type StateVariables struct {
	Liquidity decimal.Decimal
}

// Agent is one book: an identity, its configuration and the handles of every
// transaction it is a party to, in insertion order.
type Agent struct {
	Identifier     string
	Role           Role
	Parameters     Parameters
	StateVariables StateVariables
	Accounts       []Handle
}

// NewAgent returns an agent with empty accounts and zeroed parameters and state.
func NewAgent(identifier string, role Role) Agent {
	return Agent{
		Identifier: identifier,
		Role:       role,
		Accounts:   []Handle{},
	}
}

// Equal compares agents by identifier only.
func (a Agent) Equal(other Agent) bool {
	return a.Identifier == other.Identifier
}

// Map flattens parameters back to their external names.
func (p Parameters) Map() map[string]string {
	return map[string]string{
		ParamInterestRateLoans:    p.InterestRateLoans.String(),
		ParamInterestRateDeposits: p.InterestRateDeposits.String(),
		ParamActive:               strconv.FormatBool(p.Active),
	}
}

// Map flattens state variables back to their external names.
func (s StateVariables) Map() map[string]string {
	return map[string]string{
		StateLiquidity: s.Liquidity.String(),
	}
}

// ApplyParameters sets parameters from a flat name/value mapping.
// Names are matched case-insensitively; a state variable name is rejected
// instead of being silently routed to the other namespace.
func (a *Agent) ApplyParameters(values map[string]string) error {
	for name, raw := range values {
		key := strings.ToLower(strings.TrimSpace(name))
		var err error
		switch key {
		case ParamInterestRateLoans:
			a.Parameters.InterestRateLoans, err = decimal.NewFromString(strings.TrimSpace(raw))
		case ParamInterestRateDeposits:
			a.Parameters.InterestRateDeposits, err = decimal.NewFromString(strings.TrimSpace(raw))
		case ParamActive:
			a.Parameters.Active, err = strconv.ParseBool(strings.TrimSpace(raw))
		case StateLiquidity:
			return fmt.Errorf("%w: %q is a state variable, not a parameter", ErrUnknownAttribute, name)
		default:
			return fmt.Errorf("%w: parameter %q", ErrUnknownAttribute, name)
		}
		if err != nil {
			return fmt.Errorf("parameter %q: invalid value %q: %w", name, raw, err)
		}
	}

	return nil
}

// ApplyStateVariables sets state variables from a flat name/value mapping.
func (a *Agent) ApplyStateVariables(values map[string]string) error {
	for name, raw := range values {
		key := strings.ToLower(strings.TrimSpace(name))
		switch key {
		case StateLiquidity:
			v, err := decimal.NewFromString(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("state variable %q: invalid value %q: %w", name, raw, err)
			}
			a.StateVariables.Liquidity = v
		case ParamInterestRateLoans, ParamInterestRateDeposits, ParamActive:
			return fmt.Errorf("%w: %q is a parameter, not a state variable", ErrUnknownAttribute, name)
		default:
			return fmt.Errorf("%w: state variable %q", ErrUnknownAttribute, name)
		}
	}

	return nil
}
