package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
	"github.com/jkpaulin/BlackRhino/internal/ledger/usecase"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgerror"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgrouter"
)

const maxEventsLimit = 256

type HTTPEndpoint struct {
	uc    uc
	audit auditTrail
}

func (h *HTTPEndpoint) ListAgents(ctx context.Context, _ *http.Request) (any, error) {
	agents := h.uc.ListAgents(ctx)

	out := make([]Agent, 0, len(agents))
	for _, a := range agents {
		out = append(out, toHTTPAgent(a))
	}

	return AgentsResponse{Agents: out}, nil
}

func (h *HTTPEndpoint) RegisterAgent(ctx context.Context, r *http.Request) (any, error) {
	var req RegisterAgentRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}

	agent, err := h.uc.RegisterAgent(ctx, usecase.RegisterAgent{
		Identifier:     req.Identifier,
		Role:           req.Role,
		Parameters:     req.Parameters,
		StateVariables: req.StateVariables,
	})
	if err != nil {
		return nil, err
	}

	return AgentResponse{Agent: toHTTPAgent(agent), created: true}, nil
}

func (h *HTTPEndpoint) GetAgent(ctx context.Context, _ *http.Request) (any, error) {
	agentID := pkgrouter.GetParam(ctx, "id")

	agent, err := h.uc.GetAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	txs, err := h.uc.Accounts(ctx, agentID)
	if err != nil {
		return nil, err
	}

	return AgentDetailResponse{Agent: toHTTPAgent(agent), Transactions: toHTTPTransactions(txs)}, nil
}

func (h *HTTPEndpoint) UpdateAgent(ctx context.Context, r *http.Request) (any, error) {
	var req UpdateAgentRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}

	agent, err := h.uc.UpdateAgent(ctx, pkgrouter.GetParam(ctx, "id"), req.Parameters, req.StateVariables)
	if err != nil {
		return nil, err
	}

	return AgentResponse{Agent: toHTTPAgent(agent)}, nil
}

func (h *HTTPEndpoint) Render(ctx context.Context, _ *http.Request) (any, error) {
	agentID := pkgrouter.GetParam(ctx, "id")

	out, err := h.uc.Render(ctx, agentID)
	if err != nil {
		return nil, err
	}

	return RenderResponse{AgentID: agentID, Render: out}, nil
}

func (h *HTTPEndpoint) Consistency(ctx context.Context, r *http.Request) (any, error) {
	agentID := pkgrouter.GetParam(ctx, "id")

	strict, err := parseBool(r.URL.Query().Get("strict"))
	if err != nil {
		return nil, err
	}

	check := h.uc.CheckConsistency
	if strict {
		check = h.uc.CheckConsistencyStrict
	}

	report, err := check(ctx, agentID)
	if err != nil {
		return nil, err
	}

	return ConsistencyResponse{
		AgentID:      report.AgentID,
		Consistent:   report.Consistent,
		Assets:       report.Assets,
		Liabilities:  report.Liabilities,
		Transactions: report.Transactions,
	}, nil
}

func (h *HTTPEndpoint) Liquidation(ctx context.Context, r *http.Request) (any, error) {
	agentID := pkgrouter.GetParam(ctx, "id")
	txType := entity.TxType(strings.TrimSpace(r.URL.Query().Get("type")))

	volume, err := h.uc.LiquidateDue(ctx, agentID, txType)
	if err != nil {
		return nil, err
	}

	return LiquidationResponse{AgentID: agentID, Type: txType, Volume: volume}, nil
}

func (h *HTTPEndpoint) Account(ctx context.Context, _ *http.Request) (any, error) {
	summary, err := h.uc.GetAccount(ctx, pkgrouter.GetParam(ctx, "id"), entity.TxType(pkgrouter.GetParam(ctx, "type")))
	if err != nil {
		return nil, err
	}

	return AccountResponse{
		AgentID: summary.AgentID,
		Type:    summary.Type,
		Total:   summary.Total,
		Count:   summary.Count,
	}, nil
}

func (h *HTTPEndpoint) UpdateMaturity(ctx context.Context, _ *http.Request) (any, error) {
	agentID := pkgrouter.GetParam(ctx, "id")
	if err := h.uc.UpdateMaturity(ctx, agentID); err != nil {
		return nil, err
	}

	return h.GetAgent(ctx, nil)
}

func (h *HTTPEndpoint) UpdateMaturityAll(ctx context.Context, _ *http.Request) (any, error) {
	return CountResponse{Count: h.uc.UpdateMaturityAll(ctx)}, nil
}

func (h *HTTPEndpoint) Purge(ctx context.Context, r *http.Request) (any, error) {
	var req PurgeRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		return nil, err
	}

	res, err := h.uc.PurgeAccounts(ctx, pkgrouter.GetParam(ctx, "id"), req.Liquidated...)
	if err != nil {
		return nil, err
	}

	removed := make([]PurgedTransaction, 0, len(res.Removed))
	for _, p := range res.Removed {
		removed = append(removed, PurgedTransaction{Transaction: toHTTPTransaction(p.Tx), Reason: p.Reason})
	}

	return PurgeResponse{AgentID: res.AgentID, Step: res.Step, Removed: removed}, nil
}

func (h *HTTPEndpoint) Clear(ctx context.Context, _ *http.Request) (any, error) {
	n, err := h.uc.ClearAccounts(ctx, pkgrouter.GetParam(ctx, "id"))
	if err != nil {
		return nil, err
	}

	return CountResponse{Count: n}, nil
}

func (h *HTTPEndpoint) AddTransaction(ctx context.Context, r *http.Request) (any, error) {
	var req AddTransactionRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}

	handle, err := h.uc.AddTransaction(ctx, usecase.NewTransaction{
		Type:          req.Type,
		AssetClass:    req.AssetClass,
		From:          strings.TrimSpace(req.From),
		To:            strings.TrimSpace(req.To),
		Amount:        req.Amount,
		Interest:      req.Interest,
		Maturity:      req.Maturity,
		TimeOfDefault: req.TimeOfDefault,
	})
	if err != nil {
		return nil, err
	}

	tx, err := h.uc.GetTransaction(ctx, handle)
	if err != nil {
		return nil, err
	}

	return TransactionResponse{Transaction: toHTTPTransaction(tx), status: http.StatusCreated}, nil
}

func (h *HTTPEndpoint) GetTransaction(ctx context.Context, _ *http.Request) (any, error) {
	handle, err := parseHandle(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := h.uc.GetTransaction(ctx, handle)
	if err != nil {
		return nil, err
	}

	return TransactionResponse{Transaction: toHTTPTransaction(tx)}, nil
}

func (h *HTTPEndpoint) RemoveTransaction(ctx context.Context, _ *http.Request) (any, error) {
	handle, err := parseHandle(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := h.uc.RemoveTransaction(ctx, handle)
	if err != nil {
		return nil, err
	}

	return TransactionResponse{Transaction: toHTTPTransaction(tx)}, nil
}

func (h *HTTPEndpoint) AdvanceStep(ctx context.Context, _ *http.Request) (any, error) {
	return StepResponse{Step: h.uc.AdvanceStep(ctx)}, nil
}

func (h *HTTPEndpoint) Export(ctx context.Context, _ *http.Request) (any, error) {
	if err := h.uc.ExportAsync(ctx); err != nil {
		return nil, err
	}

	return ExportResponse{}, nil
}

func (h *HTTPEndpoint) Events(_ context.Context, r *http.Request) (any, error) {
	limit := maxEventsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return nil, pkgerror.NewInvalidInput(errors.New("invalid limit"))
		}
		limit = min(value, maxEventsLimit)
	}

	if h.audit == nil {
		return EventsResponse{Events: []Event{}}, nil
	}

	recent := h.audit.Recent(limit)
	out := make([]Event, 0, len(recent))
	for _, e := range recent {
		out = append(out, toHTTPEvent(e))
	}

	return EventsResponse{Events: out}, nil
}

func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return pkgerror.NewInvalidInput(errors.New("empty request body"))
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return pkgerror.NewInvalidFormat()
	}

	return nil
}

func decodeOptionalBody(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return pkgerror.NewInvalidFormat()
	}

	return nil
}

func parseHandle(ctx context.Context) (entity.Handle, error) {
	value, err := pkgrouter.GetParamInt64(ctx, "handle")
	if err != nil || value < 1 {
		return 0, pkgerror.NewInvalidInput(errors.New("invalid transaction handle"))
	}

	return entity.Handle(value), nil
}

func parseBool(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, pkgerror.NewInvalidInput(errors.New("invalid boolean query value"))
	}

	return value, nil
}

func toHTTPAgent(a entity.Agent) Agent {
	accounts := a.Accounts
	if accounts == nil {
		accounts = []entity.Handle{}
	}

	return Agent{
		Identifier:     a.Identifier,
		Role:           a.Role,
		Parameters:     a.Parameters.Map(),
		StateVariables: a.StateVariables.Map(),
		Accounts:       accounts,
	}
}

func toHTTPTransaction(tx entity.Transaction) Transaction {
	return Transaction{
		Handle:        tx.Handle,
		Type:          tx.Type,
		AssetClass:    tx.AssetClass,
		From:          tx.From,
		To:            tx.To,
		Amount:        tx.Amount,
		Interest:      tx.Interest,
		Maturity:      tx.Maturity,
		TimeOfDefault: tx.TimeOfDefault,
	}
}

func toHTTPTransactions(txs []entity.Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toHTTPTransaction(tx))
	}
	return out
}

func toHTTPEvent(e entity.LedgerEvent) Event {
	out := Event{
		EventID: e.EventID,
		Kind:    e.Kind,
		AgentID: e.AgentID,
		Step:    e.Step,
		Reason:  e.Reason,
	}

	if e.Tx != nil {
		tx := toHTTPTransaction(*e.Tx)
		out.Transaction = &tx
	}

	if e.Kind == entity.EventLedgerInconsistent {
		assets, liabilities := e.Assets, e.Liabilities
		out.Assets = &assets
		out.Liabilities = &liabilities
	}

	return out
}
