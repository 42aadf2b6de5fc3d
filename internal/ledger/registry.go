package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/owed-dev/owed/internal/id"
	"github.com/owed-dev/owed/internal/match"
	"github.com/owed-dev/owed/internal/model"
	"github.com/owed-dev/owed/internal/store"
)

// MissingRecordPolicy decides what loading a person without a stored record does.
type MissingRecordPolicy string

const (
	// MissingTolerate starts the person with no positions.
	MissingTolerate MissingRecordPolicy = "tolerate"
	// MissingPropagate returns a RecordNotFoundError.
	MissingPropagate MissingRecordPolicy = "propagate"
)

// ParseMissingRecordPolicy parses a config value. Empty means tolerate.
func ParseMissingRecordPolicy(s string) (MissingRecordPolicy, error) {
	switch MissingRecordPolicy(s) {
	case "", MissingTolerate:
		return MissingTolerate, nil
	case MissingPropagate:
		return MissingPropagate, nil
	default:
		return "", fmt.Errorf("missing record policy %q: want %q or %q", s, MissingTolerate, MissingPropagate)
	}
}

// Options configures a Registry.
type Options struct {
	LoadExisting  bool // default for CreateParams.Load
	MissingRecord MissingRecordPolicy
}

// DefaultOptions loads stored records on create and tolerates missing ones.
func DefaultOptions() Options {
	return Options{LoadExisting: true, MissingRecord: MissingTolerate}
}

// LoadMode overrides Options.LoadExisting for one Create call.
type LoadMode int

const (
	LoadDefault LoadMode = iota
	LoadYes
	LoadNo
)

// InitialBalance seeds a new account with a one-sided position.
type InitialBalance struct {
	Counterparty string
	Amount       decimal.Decimal
}

// CreateParams holds optional parameters for Registry.Create.
type CreateParams struct {
	Load            LoadMode
	InitialBalances []InitialBalance // booked in order, after any loaded positions
}

// Registry maps person names to their Accounts for one session.
type Registry struct {
	store    store.Store
	opts     Options
	accounts map[string]*Account
}

// NewRegistry creates an empty Registry backed by s. A nil store gives a
// memory-only registry: loading is skipped and persisting fails.
func NewRegistry(s store.Store, opts Options) *Registry {
	if opts.MissingRecord == "" {
		opts.MissingRecord = MissingTolerate
	}
	return &Registry{store: s, opts: opts, accounts: make(map[string]*Account)}
}

// Create registers a new Account named name.
//
// The name is rejected with a DuplicateNameError when it and a registered
// name match each other in either direction (see package match), so the
// order people are created or loaded in never matters. Stored positions are
// loaded first when requested, then InitialBalances are appended as
// one-sided positions.
func (r *Registry) Create(name string, params CreateParams) (*Account, error) {
	const op = "create person"
	if strings.TrimSpace(name) == "" {
		return nil, invalid(op, "name must not be empty")
	}
	for _, existing := range r.Names() {
		if match.Matches(name, existing) || match.Matches(existing, name) {
			return nil, &DuplicateNameError{Name: name, Existing: existing}
		}
	}
	for i, ib := range params.InitialBalances {
		if strings.TrimSpace(ib.Counterparty) == "" {
			return nil, invalid(op, "initial balance %d: counterparty must not be empty", i)
		}
	}

	acct := NewAccount(name)
	if r.shouldLoad(params.Load) {
		positions, err := r.read(name)
		if err != nil {
			return nil, err
		}
		acct.positions = positions
	}

	for _, ib := range params.InitialBalances {
		acct.append(model.Position{Counterparty: ib.Counterparty, Amount: ib.Amount, Ref: id.NewRef()})
	}

	r.accounts[name] = acct
	slog.Debug("person registered", "name", name, "positions", acct.Len())
	return acct, nil
}

func (r *Registry) shouldLoad(mode LoadMode) bool {
	if r.store == nil {
		return false
	}
	switch mode {
	case LoadYes:
		return true
	case LoadNo:
		return false
	default:
		return r.opts.LoadExisting
	}
}

func (r *Registry) read(name string) ([]model.Position, error) {
	positions, err := r.store.ReadRecord(name)
	if errors.Is(err, store.ErrNotFound) {
		if r.opts.MissingRecord == MissingPropagate {
			return nil, &RecordNotFoundError{Name: name, Err: err}
		}
		slog.Debug("no stored record, starting empty", "name", name)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading record for %s: %w", name, err)
	}
	return positions, nil
}

// Delete removes a person from the registry. Stored records are kept.
// Deleting a name or account that is not registered is a no-op.
func (r *Registry) Delete(p Party) {
	switch v := p.(type) {
	case byName:
		delete(r.accounts, string(v))
	case byAccount:
		if v.a != nil && r.accounts[v.a.name] == v.a {
			delete(r.accounts, v.a.name)
		}
	}
}

// Get returns the Account registered under exactly name.
func (r *Registry) Get(name string) (*Account, bool) {
	a, ok := r.accounts[name]
	return a, ok
}

// Resolve finds the Account a user typed: an exact name first, otherwise the
// single registered name that query matches as a pattern.
func (r *Registry) Resolve(query string) (*Account, error) {
	if a, ok := r.accounts[query]; ok {
		return a, nil
	}
	var found []string
	for _, name := range r.Names() {
		if match.Matches(query, name) {
			found = append(found, name)
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: no person matches %q", ErrUnknownPerson, query)
	case 1:
		return r.accounts[found[0]], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %s", ErrAmbiguousName, query, strings.Join(found, ", "))
	}
}

// ResolveParty resolves query to a live account party, or to a bare name
// when nobody registered matches it.
func (r *Registry) ResolveParty(query string) (Party, error) {
	a, err := r.Resolve(query)
	if errors.Is(err, ErrUnknownPerson) {
		return ByName(query), nil
	}
	if err != nil {
		return nil, err
	}
	return ByAccount(a), nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.accounts))
	for name := range r.accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Accounts returns the registered Accounts sorted by name.
func (r *Registry) Accounts() []*Account {
	names := r.Names()
	out := make([]*Account, len(names))
	for i, name := range names {
		out[i] = r.accounts[name]
	}
	return out
}

// Len returns the number of registered people.
func (r *Registry) Len() int { return len(r.accounts) }

// Persist replaces a's stored record with its current positions.
func (r *Registry) Persist(a *Account) error {
	if a == nil {
		return invalid("persist", "account must not be nil")
	}
	if r.store == nil {
		return fmt.Errorf("persisting %s: registry has no store", a.name)
	}
	if err := r.store.WriteRecord(a.name, a.positions); err != nil {
		return fmt.Errorf("persisting %s: %w", a.name, err)
	}
	return nil
}

// PersistAll persists every registered Account. It keeps going after a
// failure and returns all failures joined.
func (r *Registry) PersistAll() error {
	var errs []error
	for _, a := range r.Accounts() {
		if err := r.Persist(a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadAll registers a person for every stored record, loading its positions.
// Names are visited in sorted order; names already registered are skipped.
// It keeps going after a failure and returns all failures joined.
func (r *Registry) LoadAll() error {
	if r.store == nil {
		return nil
	}
	names, err := r.store.ListRecordNames()
	if err != nil {
		return fmt.Errorf("listing records: %w", err)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if _, ok := r.accounts[name]; ok {
			slog.Debug("already registered, not reloading", "name", name)
			continue
		}
		if _, err := r.Create(name, CreateParams{Load: LoadYes}); err != nil {
			errs = append(errs, fmt.Errorf("loading %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
