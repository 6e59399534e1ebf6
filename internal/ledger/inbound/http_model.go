package inbound

import (
	"net/http"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
	"github.com/shopspring/decimal"
)

type RegisterAgentRequest struct {
	Identifier     string            `json:"identifier"`
	Role           entity.Role       `json:"role"`
	Parameters     map[string]string `json:"parameters"`
	StateVariables map[string]string `json:"state_variables"`
}

type UpdateAgentRequest struct {
	Parameters     map[string]string `json:"parameters"`
	StateVariables map[string]string `json:"state_variables"`
}

type Agent struct {
	Identifier     string            `json:"identifier"`
	Role           entity.Role       `json:"role"`
	Parameters     map[string]string `json:"parameters"`
	StateVariables map[string]string `json:"state_variables"`
	Accounts       []entity.Handle   `json:"accounts"`
}

type AgentResponse struct {
	Agent
	created bool
}

func (r AgentResponse) StatusCode() int {
	if r.created {
		return http.StatusCreated
	}
	return http.StatusOK
}

func (r AgentResponse) Message() string {
	if r.created {
		return "agent registered"
	}
	return "request has been successfully"
}

type AgentDetailResponse struct {
	Agent
	Transactions []Transaction `json:"transactions"`
}

type AgentsResponse struct {
	Agents []Agent `json:"agents"`
}

func (r AgentsResponse) Meta() map[string]any {
	return map[string]any{"total": len(r.Agents)}
}

type RenderResponse struct {
	AgentID string `json:"agent_id"`
	Render  string `json:"render"`
}

type AddTransactionRequest struct {
	Type          entity.TxType   `json:"type"`
	AssetClass    string          `json:"asset_class"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	Amount        decimal.Decimal `json:"amount"`
	Interest      decimal.Decimal `json:"interest"`
	Maturity      int64           `json:"maturity"`
	TimeOfDefault *int64          `json:"time_of_default"`
}

type Transaction struct {
	Handle        entity.Handle   `json:"handle"`
	Type          entity.TxType   `json:"type"`
	AssetClass    string          `json:"asset_class,omitempty"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	Amount        decimal.Decimal `json:"amount"`
	Interest      decimal.Decimal `json:"interest"`
	Maturity      int64           `json:"maturity"`
	TimeOfDefault int64           `json:"time_of_default"`
}

type TransactionResponse struct {
	Transaction
	status int
}

func (r TransactionResponse) StatusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

type ConsistencyResponse struct {
	AgentID      string          `json:"agent_id"`
	Consistent   bool            `json:"consistent"`
	Assets       decimal.Decimal `json:"assets"`
	Liabilities  decimal.Decimal `json:"liabilities"`
	Transactions int             `json:"transactions"`
}

type AccountResponse struct {
	AgentID string          `json:"agent_id"`
	Type    entity.TxType   `json:"type"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
}

type LiquidationResponse struct {
	AgentID string          `json:"agent_id"`
	Type    entity.TxType   `json:"type"`
	Volume  decimal.Decimal `json:"volume"`
}

type PurgeRequest struct {
	Liquidated []entity.TxType `json:"liquidated"`
}

type PurgedTransaction struct {
	Transaction
	Reason string `json:"reason"`
}

type PurgeResponse struct {
	AgentID string              `json:"agent_id"`
	Step    int64               `json:"step"`
	Removed []PurgedTransaction `json:"removed"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type StepResponse struct {
	Step int64 `json:"step"`
}

type ExportResponse struct{}

func (ExportResponse) StatusCode() int {
	return http.StatusAccepted
}

func (ExportResponse) Message() string {
	return "graph export scheduled"
}

type Event struct {
	EventID     string           `json:"event_id"`
	Kind        entity.EventKind `json:"kind"`
	AgentID     string           `json:"agent_id"`
	Step        int64            `json:"step"`
	Reason      string           `json:"reason,omitempty"`
	Transaction *Transaction     `json:"transaction,omitempty"`
	Assets      *decimal.Decimal `json:"assets,omitempty"`
	Liabilities *decimal.Decimal `json:"liabilities,omitempty"`
}

type EventsResponse struct {
	Events []Event `json:"events"`
}
