package usecase

import (
	"context"
	"encoding/xml"
	"sort"
	"strconv"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
)

type xmlAgent struct {
	XMLName      xml.Name         `xml:"agent"`
	Identifier   string           `xml:"identifier,attr"`
	Type         xmlValue         `xml:"type"`
	Parameters   []xmlNamedValue  `xml:"parameter"`
	State        []xmlNamedValue  `xml:"variable"`
	Transactions []xmlTransaction `xml:"transaction"`
}

type xmlValue struct {
	Value string `xml:"value,attr"`
}

type xmlNamedValue struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlTransaction struct {
	Handle        int64  `xml:"handle,attr"`
	Type          string `xml:"type,attr"`
	AssetClass    string `xml:"asset_class,attr,omitempty"`
	From          string `xml:"from,attr"`
	To            string `xml:"to,attr"`
	Amount        string `xml:"amount,attr"`
	Interest      string `xml:"interest,attr"`
	Maturity      int64  `xml:"maturity,attr"`
	TimeOfDefault int64  `xml:"time_of_default,attr"`
}

// Render returns a human-readable XML dump of the agent: its role, its
// parameters and state variables sorted by name, and its transactions in
// book order.
func (u *Usecase) Render(ctx context.Context, agentID string) (string, error) {
	agent, err := u.store.GetAgent(ctx, agentID)
	if err != nil {
		return "", mapErr(err)
	}

	txs, err := u.store.Accounts(ctx, agentID)
	if err != nil {
		return "", mapErr(err)
	}

	doc := xmlAgent{
		Identifier: agent.Identifier,
		Type:       xmlValue{Value: string(agent.Role)},
		Parameters: namedValues(agent.Parameters.Map()),
		State:      namedValues(agent.StateVariables.Map()),
	}
	for _, tx := range txs {
		doc.Transactions = append(doc.Transactions, xmlTransaction{
			Handle:        int64(tx.Handle),
			Type:          string(tx.Type),
			AssetClass:    tx.AssetClass,
			From:          tx.From,
			To:            tx.To,
			Amount:        tx.Amount.String(),
			Interest:      tx.Interest.String(),
			Maturity:      tx.Maturity,
			TimeOfDefault: tx.TimeOfDefault,
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", normalizeErr(err)
	}

	return string(out), nil
}

func namedValues(values map[string]string) []xmlNamedValue {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]xmlNamedValue, 0, len(names))
	for _, name := range names {
		out = append(out, xmlNamedValue{Name: name, Value: values[name]})
	}
	return out
}

// handleString formats h the way it appears in URLs.
func handleString(h entity.Handle) string {
	return strconv.FormatInt(int64(h), 10)
}
