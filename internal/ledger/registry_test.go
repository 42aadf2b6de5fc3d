package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owed-dev/owed/internal/model"
	"github.com/owed-dev/owed/internal/store"
)

func TestCreate_Registers(t *testing.T) {
	r := NewRegistry(newMemStore(), DefaultOptions())

	a, err := r.Create("Alice", CreateParams{})
	require.NoError(t, err)
	assert.Equal(t, "Alice", a.Name())

	got, ok := r.Get("Alice")
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, 1, r.Len())
}

func TestCreate_DuplicateCaseInsensitive(t *testing.T) {
	r := NewRegistry(nil, DefaultOptions())
	_, err := r.Create("Bob", CreateParams{})
	require.NoError(t, err)

	_, err = r.Create("bob", CreateParams{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)

	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Bob", dup.Existing)
	assert.Equal(t, 1, r.Len())
}

func TestCreate_DuplicatePrefixRule(t *testing.T) {
	r := NewRegistry(nil, DefaultOptions())
	_, err := r.Create("Bobby", CreateParams{})
	require.NoError(t, err)

	// "bob" read as a pattern matches the start of "Bobby".
	_, err = r.Create("bob", CreateParams{})
	assert.ErrorIs(t, err, ErrDuplicateName)

	// "Bobby" matches the start of "Bobbyjoe", so the longer name is
	// rejected as well.
	_, err = r.Create("Bobbyjoe", CreateParams{})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = r.Create("Rob", CreateParams{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Bobby", "Rob"}, r.Names())
}

func TestCreate_DuplicateEitherDirection(t *testing.T) {
	r := NewRegistry(nil, DefaultOptions())
	_, err := r.Create("ann", CreateParams{})
	require.NoError(t, err)

	_, err = r.Create("Anna", CreateParams{})
	require.Error(t, err)
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "ann", dup.Existing)
	assert.Equal(t, []string{"ann"}, r.Names())
}

func TestCreate_InvalidArguments(t *testing.T) {
	r := NewRegistry(nil, DefaultOptions())

	_, err := r.Create("", CreateParams{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = r.Create("Alice", CreateParams{InitialBalances: []InitialBalance{{Counterparty: "", Amount: dec("1")}}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, r.Len(), "nothing registered on error")
}

func TestCreate_InitialBalances(t *testing.T) {
	r := NewRegistry(nil, DefaultOptions())

	a, err := r.Create("Alice", CreateParams{InitialBalances: []InitialBalance{
		{Counterparty: "Bob", Amount: dec("15")},
		{Counterparty: "Carol", Amount: dec("-4.5")},
	}})
	require.NoError(t, err)

	require.Equal(t, 2, a.Len())
	assert.Equal(t, "Bob", a.Positions()[0].Counterparty)
	assert.Equal(t, "Carol", a.Positions()[1].Counterparty)
	assert.True(t, a.Balance().Equal(dec("10.5")))
}

func TestCreate_LoadExisting(t *testing.T) {
	ms := newMemStore()
	ms.records["Alice"] = []model.Position{{Counterparty: "Bob", Amount: dec("7"), Memo: "old"}}
	r := NewRegistry(ms, DefaultOptions())

	a, err := r.Create("Alice", CreateParams{InitialBalances: []InitialBalance{{Counterparty: "Carol", Amount: dec("1")}}})
	require.NoError(t, err)
	require.Equal(t, 2, a.Len())
	assert.Equal(t, "old", a.Positions()[0].Memo, "loaded positions come first")
	assert.True(t, a.Balance().Equal(dec("8")))
}

func TestCreate_LoadNo(t *testing.T) {
	ms := newMemStore()
	ms.records["Alice"] = []model.Position{{Counterparty: "Bob", Amount: dec("7")}}
	r := NewRegistry(ms, DefaultOptions())

	a, err := r.Create("Alice", CreateParams{Load: LoadNo})
	require.NoError(t, err)
	assert.Zero(t, a.Len())
}

func TestCreate_LoadExistingDisabledByOption(t *testing.T) {
	ms := newMemStore()
	ms.records["Alice"] = []model.Position{{Counterparty: "Bob", Amount: dec("7")}}
	r := NewRegistry(ms, Options{LoadExisting: false})

	a, err := r.Create("Alice", CreateParams{})
	require.NoError(t, err)
	assert.Zero(t, a.Len())

	b, err := r.Create("Bob", CreateParams{Load: LoadYes})
	require.NoError(t, err)
	assert.Zero(t, b.Len(), "missing record tolerated")
}

func TestCreate_MissingRecordPolicy(t *testing.T) {
	r := NewRegistry(newMemStore(), DefaultOptions())
	a, err := r.Create("Alice", CreateParams{})
	require.NoError(t, err, "tolerated by default")
	assert.Zero(t, a.Len())

	r = NewRegistry(newMemStore(), Options{LoadExisting: true, MissingRecord: MissingPropagate})
	_, err = r.Create("Alice", CreateParams{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Zero(t, r.Len())
}

func TestCreate_ReadFailure(t *testing.T) {
	ms := newMemStore()
	ms.failRead["Alice"] = true
	r := NewRegistry(ms, DefaultOptions())

	_, err := r.Create("Alice", CreateParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestDelete(t *testing.T) {
	ms := newMemStore()
	r := NewRegistry(ms, DefaultOptions())
	a, err := r.Create("Alice", CreateParams{})
	require.NoError(t, err)
	_, err = r.Create("Bob", CreateParams{})
	require.NoError(t, err)
	require.NoError(t, r.PersistAll())

	r.Delete(ByName("Bob"))
	r.Delete(ByAccount(a))
	assert.Zero(t, r.Len())
	assert.Len(t, ms.records, 2, "storage is untouched")

	// No-ops.
	r.Delete(ByName("Nobody"))
	r.Delete(ByAccount(NewAccount("Ghost")))
	r.Delete(nil)

	// The name is free again.
	_, err = r.Create("alice", CreateParams{Load: LoadNo})
	assert.NoError(t, err)
}

func TestDelete_ByAccountOnlyRemovesSameInstance(t *testing.T) {
	r := NewRegistry(nil, DefaultOptions())
	_, err := r.Create("Alice", CreateParams{})
	require.NoError(t, err)

	r.Delete(ByAccount(NewAccount("Alice")))
	assert.Equal(t, 1, r.Len())
}

func TestResolve(t *testing.T) {
	r := NewRegistry(nil, DefaultOptions())
	for _, name := range []string{"Alice", "Albert", "Bob"} {
		_, err := r.Create(name, CreateParams{})
		require.NoError(t, err)
	}

	a, err := r.Resolve("Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", a.Name())

	a, err = r.Resolve("bo")
	require.NoError(t, err)
	assert.Equal(t, "Bob", a.Name())

	_, err = r.Resolve("al")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousName)
	assert.Contains(t, err.Error(), "Albert, Alice")

	_, err = r.Resolve("Zed")
	assert.ErrorIs(t, err, ErrUnknownPerson)
}

func TestResolveParty(t *testing.T) {
	r := NewRegistry(nil, DefaultOptions())
	for _, name := range []string{"Alice", "Albert", "Bob"} {
		_, err := r.Create(name, CreateParams{})
		require.NoError(t, err)
	}

	p, err := r.ResolveParty("bob")
	require.NoError(t, err)
	bob, _ := r.Get("Bob")
	assert.Same(t, bob, p.account())

	p, err = r.ResolveParty("Zed")
	require.NoError(t, err)
	assert.Nil(t, p.account())
	assert.Equal(t, "Zed", PartyName(p))

	_, err = r.ResolveParty("al")
	assert.ErrorIs(t, err, ErrAmbiguousName)
}

func TestAccountsSorted(t *testing.T) {
	r := NewRegistry(nil, DefaultOptions())
	for _, name := range []string{"Carol", "Alice", "Bob"} {
		_, err := r.Create(name, CreateParams{})
		require.NoError(t, err)
	}
	var names []string
	for _, a := range r.Accounts() {
		names = append(names, a.Name())
	}
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, names)
	assert.Equal(t, names, r.Names())
}

func TestPersistLoadRoundTrip(t *testing.T) {
	s := store.NewDirStore(t.TempDir())
	r := NewRegistry(s, DefaultOptions())
	a, err := r.Create("Alice", CreateParams{})
	require.NoError(t, err)
	b, err := r.Create("Bob", CreateParams{})
	require.NoError(t, err)

	require.NoError(t, AddPosition(a, ByAccount(b), dec("12.50"), "pizza"))
	require.NoError(t, AddPosition(a, ByName("Landlord"), dec("-800"), "rent"))
	require.NoError(t, r.Persist(a))

	r2 := NewRegistry(s, DefaultOptions())
	a2, err := r2.Create("Alice", CreateParams{Load: LoadYes})
	require.NoError(t, err)

	want := a.Positions()
	got := a2.Positions()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "position %d", i)
	}
}

func TestPersist_WithoutStore(t *testing.T) {
	r := NewRegistry(nil, DefaultOptions())
	a, err := r.Create("Alice", CreateParams{})
	require.NoError(t, err)

	assert.Error(t, r.Persist(a))
	assert.ErrorIs(t, r.Persist(nil), ErrInvalidArgument)
}

func TestPersistAll_ReportsEveryFailure(t *testing.T) {
	ms := newMemStore()
	ms.failWrite["Alice"] = true
	ms.failWrite["Carol"] = true
	r := NewRegistry(ms, Options{})
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		_, err := r.Create(name, CreateParams{})
		require.NoError(t, err)
	}

	err := r.PersistAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persisting Alice")
	assert.Contains(t, err.Error(), "persisting Carol")
	assert.Contains(t, ms.records, "Bob", "other accounts are still persisted")
}

func TestLoadAll(t *testing.T) {
	ms := newMemStore()
	ms.records["Bob"] = []model.Position{{Counterparty: "Alice", Amount: dec("-5")}}
	ms.records["Alice"] = []model.Position{{Counterparty: "Bob", Amount: dec("5")}}
	r := NewRegistry(ms, Options{LoadExisting: false})

	require.NoError(t, r.LoadAll())
	assert.Equal(t, []string{"Alice", "Bob"}, r.Names())

	bob, _ := r.Get("Bob")
	assert.True(t, bob.Balance().Equal(dec("-5")))
}

func TestLoadAll_SkipsRegistered(t *testing.T) {
	ms := newMemStore()
	ms.records["Alice"] = []model.Position{{Counterparty: "Bob", Amount: dec("5")}}
	r := NewRegistry(ms, DefaultOptions())

	a, err := r.Create("Alice", CreateParams{})
	require.NoError(t, err)
	require.NoError(t, r.LoadAll())

	got, _ := r.Get("Alice")
	assert.Same(t, a, got)
	assert.Equal(t, 1, got.Len(), "not loaded twice")
}

func TestLoadAll_ConflictingStoredNames(t *testing.T) {
	ms := newMemStore()
	ms.records["bobby"] = nil
	ms.records["bob"] = nil
	r := NewRegistry(ms, DefaultOptions())

	// Only an edited store can hold both; the first in sorted order wins.
	err := r.LoadAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Contains(t, err.Error(), "loading bobby")
	assert.Equal(t, []string{"bob"}, r.Names())
}

func TestPersistReload_CaseDifferingPrefixNames(t *testing.T) {
	dir := t.TempDir()
	s := store.NewDirStore(dir)

	seed := NewRegistry(s, DefaultOptions())
	ann, err := seed.Create("ann", CreateParams{})
	require.NoError(t, err)
	_, err = seed.Create("Anna", CreateParams{})
	require.ErrorIs(t, err, ErrDuplicateName)
	bob, err := seed.Create("Bob", CreateParams{})
	require.NoError(t, err)
	require.NoError(t, AddPosition(ann, ByAccount(bob), dec("4"), "tea"))
	require.NoError(t, seed.PersistAll())

	r := NewRegistry(s, DefaultOptions())
	require.NoError(t, r.LoadAll())
	assert.Equal(t, []string{"Bob", "ann"}, r.Names())
	got, _ := r.Get("ann")
	assert.True(t, got.Balance().Equal(dec("4")))
}

func TestLoadAll_ReportsEveryFailure(t *testing.T) {
	ms := newMemStore()
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		ms.records[name] = nil
	}
	ms.failRead["Alice"] = true
	ms.failRead["Carol"] = true
	r := NewRegistry(ms, DefaultOptions())

	err := r.LoadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading Alice")
	assert.Contains(t, err.Error(), "loading Carol")
	assert.Equal(t, []string{"Bob"}, r.Names())
}

func TestLoadAllPersistAllIdempotent(t *testing.T) {
	dir := t.TempDir()
	s := store.NewDirStore(dir)

	seed := NewRegistry(s, DefaultOptions())
	a, err := seed.Create("Alice", CreateParams{})
	require.NoError(t, err)
	b, err := seed.Create("Bob", CreateParams{InitialBalances: []InitialBalance{{Counterparty: "Carol", Amount: dec("3.00")}}})
	require.NoError(t, err)
	_, err = SplitBill(SplitParams{Creditor: a, Debtors: Single(b), Total: dec("20.00"), Memo: "lunch"})
	require.NoError(t, err)
	require.NoError(t, seed.PersistAll())

	before := readDir(t, dir)

	r := NewRegistry(s, DefaultOptions())
	require.NoError(t, r.LoadAll())
	require.NoError(t, r.PersistAll())

	assert.Equal(t, before, readDir(t, dir))
}

func TestLoadAllPersistAll_IgnoresUpperCaseExtension(t *testing.T) {
	dir := t.TempDir()
	record := `[{"counterparty": "Alice", "amount": "3", "memo": ""}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Bob.JSON"), []byte(record), 0o644))
	s := store.NewDirStore(dir)
	require.NoError(t, s.WriteRecord("Alice", []model.Position{{Counterparty: "Carol", Amount: dec("1")}}))
	before := readDir(t, dir)

	r := NewRegistry(s, DefaultOptions())
	require.NoError(t, r.LoadAll())
	require.NoError(t, r.PersistAll())

	assert.Equal(t, []string{"Alice"}, r.Names())
	assert.Equal(t, before, readDir(t, dir), "no empty Bob.json is written")
}

func readDir(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	out := make(map[string]string)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		out[e.Name()] = string(data)
	}
	return out
}

func TestParseMissingRecordPolicy(t *testing.T) {
	p, err := ParseMissingRecordPolicy("")
	require.NoError(t, err)
	assert.Equal(t, MissingTolerate, p)

	p, err = ParseMissingRecordPolicy("propagate")
	require.NoError(t, err)
	assert.Equal(t, MissingPropagate, p)

	_, err = ParseMissingRecordPolicy("ignore")
	assert.Error(t, err)
}
