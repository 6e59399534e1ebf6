package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkguid"
	"github.com/shopspring/decimal"
)

func newRegistryWithAgents(t *testing.T, ids ...string) *Registry {
	t.Helper()

	reg := NewRegistry(pkguid.NewSequence(0))
	for _, id := range ids {
		if err := reg.CreateAgent(context.Background(), entity.NewAgent(id, entity.RoleBank)); err != nil {
			t.Fatalf("CreateAgent(%s) err = %v", id, err)
		}
	}

	return reg
}

func tx(typ entity.TxType, from, to string, amount int64, maturity int64) entity.Transaction {
	return entity.Transaction{
		Type:          typ,
		From:          from,
		To:            to,
		Amount:        decimal.NewFromInt(amount),
		Interest:      decimal.RequireFromString("0.01"),
		Maturity:      maturity,
		TimeOfDefault: entity.NotDefaulted,
	}
}

func TestRegistry_CreateAgent_Duplicate(t *testing.T) {
	t.Parallel()

	reg := newRegistryWithAgents(t, "bank-1")

	err := reg.CreateAgent(context.Background(), entity.NewAgent("bank-1", entity.RoleBank))
	if !errors.Is(err, entity.ErrAgentExists) {
		t.Fatalf("CreateAgent() err = %v, want ErrAgentExists", err)
	}
}

func TestRegistry_Create_RegistersBothSides(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := newRegistryWithAgents(t, "bank-1", "bank-2")

	h, err := reg.Create(ctx, tx(entity.TxTypeIBLoans, "bank-1", "bank-2", 100, 3))
	if err != nil {
		t.Fatalf("Create() err = %v", err)
	}
	if h != 1 {
		t.Fatalf("Create() handle = %d, want 1", h)
	}

	fromBook, err := reg.Accounts(ctx, "bank-1")
	if err != nil {
		t.Fatalf("Accounts(bank-1) err = %v", err)
	}
	toBook, err := reg.Accounts(ctx, "bank-2")
	if err != nil {
		t.Fatalf("Accounts(bank-2) err = %v", err)
	}

	if len(fromBook) != 1 || len(toBook) != 1 {
		t.Fatalf("book sizes = %d/%d, want 1/1", len(fromBook), len(toBook))
	}
	if !reflect.DeepEqual(fromBook[0], toBook[0]) {
		t.Fatalf("books disagree: %+v vs %+v", fromBook[0], toBook[0])
	}
	if fromBook[0].Handle != h || fromBook[0].Maturity != 3 || !fromBook[0].Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected stored tx: %+v", fromBook[0])
	}

	agent, err := reg.GetAgent(ctx, "bank-2")
	if err != nil {
		t.Fatalf("GetAgent() err = %v", err)
	}
	if !reflect.DeepEqual(agent.Accounts, []entity.Handle{h}) {
		t.Fatalf("GetAgent() accounts = %v, want [%d]", agent.Accounts, h)
	}
}

func TestRegistry_Create_UnknownParty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := newRegistryWithAgents(t, "bank-1")

	_, err := reg.Create(ctx, tx(entity.TxTypeLoans, "bank-1", "firm-9", 10, 1))
	if !errors.Is(err, entity.ErrAgentNotFound) {
		t.Fatalf("Create() err = %v, want ErrAgentNotFound", err)
	}

	book, _ := reg.Accounts(ctx, "bank-1")
	if len(book) != 0 {
		t.Fatalf("partial registration: bank-1 holds %d transactions", len(book))
	}
	if got := len(reg.Transactions(ctx)); got != 0 {
		t.Fatalf("registry holds %d transactions, want 0", got)
	}
}

func TestRegistry_Remove_BothSides(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := newRegistryWithAgents(t, "bank-1", "bank-2")

	keep, _ := reg.Create(ctx, tx(entity.TxTypeIBLoans, "bank-1", "bank-2", 10, 1))
	drop, _ := reg.Create(ctx, tx(entity.TxTypeIBLoans, "bank-2", "bank-1", 20, 1))

	removed, err := reg.Remove(ctx, drop)
	if err != nil {
		t.Fatalf("Remove() err = %v", err)
	}
	if removed.Handle != drop {
		t.Fatalf("Remove() returned handle %d, want %d", removed.Handle, drop)
	}

	for _, id := range []string{"bank-1", "bank-2"} {
		agent, _ := reg.GetAgent(ctx, id)
		if !reflect.DeepEqual(agent.Accounts, []entity.Handle{keep}) {
			t.Fatalf("%s accounts = %v, want [%d]", id, agent.Accounts, keep)
		}
	}

	if _, err := reg.Remove(ctx, drop); !errors.Is(err, entity.ErrTransactionNotFound) {
		t.Fatalf("second Remove() err = %v, want ErrTransactionNotFound", err)
	}
	if dangling := reg.Dangling(ctx); len(dangling) != 0 {
		t.Fatalf("dangling handles: %v", dangling)
	}
}

func TestRegistry_MatureAgent_FloorsAtZero(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := newRegistryWithAgents(t, "bank-1", "bank-2")
	h, _ := reg.Create(ctx, tx(entity.TxTypeIBLoans, "bank-1", "bank-2", 10, 2))

	wantChanged := []int{1, 1, 0}
	wantMaturity := []int64{1, 0, 0}
	for i := range wantChanged {
		changed, err := reg.MatureAgent(ctx, "bank-1")
		if err != nil {
			t.Fatalf("MatureAgent() err = %v", err)
		}
		got, _ := reg.Get(ctx, h)
		if changed != wantChanged[i] || got.Maturity != wantMaturity[i] {
			t.Fatalf("step %d: changed=%d maturity=%d, want %d/%d", i+1, changed, got.Maturity, wantChanged[i], wantMaturity[i])
		}
	}

	// the counterparty sees the same record
	book, _ := reg.Accounts(ctx, "bank-2")
	if book[0].Maturity != 0 {
		t.Fatalf("counterparty maturity = %d, want 0", book[0].Maturity)
	}
}

func TestRegistry_MatureAll_OncePerTransaction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := newRegistryWithAgents(t, "bank-1", "bank-2", "bank-3")
	a, _ := reg.Create(ctx, tx(entity.TxTypeIBLoans, "bank-1", "bank-2", 10, 5))
	b, _ := reg.Create(ctx, tx(entity.TxTypeIBLoans, "bank-2", "bank-3", 10, 0))

	if changed := reg.MatureAll(ctx); changed != 1 {
		t.Fatalf("MatureAll() changed = %d, want 1", changed)
	}

	gotA, _ := reg.Get(ctx, a)
	gotB, _ := reg.Get(ctx, b)
	if gotA.Maturity != 4 || gotB.Maturity != 0 {
		t.Fatalf("maturities = %d/%d, want 4/0", gotA.Maturity, gotB.Maturity)
	}
}

func TestRegistry_RemoveWhere(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := newRegistryWithAgents(t, "bank-1", "bank-2", "bank-3")
	small, _ := reg.Create(ctx, tx(entity.TxTypeIBLoans, "bank-1", "bank-2", 0, 3))
	big, _ := reg.Create(ctx, tx(entity.TxTypeIBLoans, "bank-1", "bank-3", 50, 3))
	other, _ := reg.Create(ctx, tx(entity.TxTypeIBLoans, "bank-2", "bank-3", 0, 3))

	removed, err := reg.RemoveWhere(ctx, "bank-1", func(tx entity.Transaction) bool {
		return tx.Amount.IsZero()
	})
	if err != nil {
		t.Fatalf("RemoveWhere() err = %v", err)
	}
	if len(removed) != 1 || removed[0].Handle != small {
		t.Fatalf("RemoveWhere() removed = %+v, want only %d", removed, small)
	}

	bank2, _ := reg.GetAgent(ctx, "bank-2")
	if !reflect.DeepEqual(bank2.Accounts, []entity.Handle{other}) {
		t.Fatalf("bank-2 accounts = %v, want [%d]", bank2.Accounts, other)
	}
	bank1, _ := reg.GetAgent(ctx, "bank-1")
	if !reflect.DeepEqual(bank1.Accounts, []entity.Handle{big}) {
		t.Fatalf("bank-1 accounts = %v, want [%d]", bank1.Accounts, big)
	}
}

func TestRegistry_UpdateAgent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := newRegistryWithAgents(t, "bank-1", "bank-2")
	h, _ := reg.Create(ctx, tx(entity.TxTypeIBLoans, "bank-1", "bank-2", 10, 1))

	err := reg.UpdateAgent(ctx, "bank-1", func(a *entity.Agent) error {
		a.Parameters.Active = true
		a.Identifier = "hijacked"
		a.Accounts = nil
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateAgent() err = %v", err)
	}

	agent, err := reg.GetAgent(ctx, "bank-1")
	if err != nil {
		t.Fatalf("GetAgent() err = %v", err)
	}
	if !agent.Parameters.Active {
		t.Fatal("expected Active to be persisted")
	}
	if !reflect.DeepEqual(agent.Accounts, []entity.Handle{h}) {
		t.Fatalf("accounts = %v, want [%d]", agent.Accounts, h)
	}

	sentinel := errors.New("reject")
	if err := reg.UpdateAgent(ctx, "bank-1", func(*entity.Agent) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Fatalf("UpdateAgent() err = %v, want sentinel", err)
	}
}

func TestRegistry_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := NewRegistry(nil)

	t.Run("GetAgent", func(t *testing.T) {
		if _, err := reg.GetAgent(ctx, "missing"); !errors.Is(err, entity.ErrAgentNotFound) {
			t.Fatalf("GetAgent() err = %v, want ErrAgentNotFound", err)
		}
	})

	t.Run("Accounts", func(t *testing.T) {
		if _, err := reg.Accounts(ctx, "missing"); !errors.Is(err, entity.ErrAgentNotFound) {
			t.Fatalf("Accounts() err = %v, want ErrAgentNotFound", err)
		}
	})

	t.Run("MatureAgent", func(t *testing.T) {
		if _, err := reg.MatureAgent(ctx, "missing"); !errors.Is(err, entity.ErrAgentNotFound) {
			t.Fatalf("MatureAgent() err = %v, want ErrAgentNotFound", err)
		}
	})

	t.Run("Get", func(t *testing.T) {
		if _, err := reg.Get(ctx, 42); !errors.Is(err, entity.ErrTransactionNotFound) {
			t.Fatalf("Get() err = %v, want ErrTransactionNotFound", err)
		}
	})
}
